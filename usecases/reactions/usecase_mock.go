package reactions

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mythicavalon/EchoLang/models"
)

// MockReactionsUseCase is a mock implementation of usecases.ReactionsUseCaseInterface
type MockReactionsUseCase struct {
	mock.Mock
}

func (m *MockReactionsUseCase) HandleReaction(
	ctx context.Context,
	event models.DiscordReactionEvent,
) (models.RouteOutcome, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(models.RouteOutcome), args.Error(1)
}

func (m *MockReactionsUseCase) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
