package usecases

import (
	"context"

	"github.com/mythicavalon/EchoLang/models"
)

// ReactionsUseCaseInterface defines the reaction router operations the gateway handler drives
type ReactionsUseCaseInterface interface {
	HandleReaction(ctx context.Context, event models.DiscordReactionEvent) (models.RouteOutcome, error)
	Shutdown(ctx context.Context) error
}
