package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/usecases"
)

// GatewayIntents are the gateway events the bot needs: guilds for the member cache, reactions to
// trigger translations and message content to read the text being translated
const GatewayIntents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsMessageContent

// EventWrapper decorates an event handler invocation, e.g. with panic alerting
type EventWrapper func(eventName string, handler func()) func()

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	reactionsUseCase usecases.ReactionsUseCaseInterface
	wrapEvent        EventWrapper
	eventTimeout     time.Duration
}

// NewDiscordEventsHandler registers the bot's event handlers on session. wrapEvent may be nil.
func NewDiscordEventsHandler(
	session *discordgo.Session,
	reactionsUseCase usecases.ReactionsUseCaseInterface,
	wrapEvent EventWrapper,
	eventTimeout time.Duration,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		reactionsUseCase: reactionsUseCase,
		wrapEvent:        wrapEvent,
		eventTimeout:     eventTimeout,
	}

	session.AddHandler(handler.handleReadyEvent)
	session.AddHandler(handler.handleReactionAddedEvent)
	session.Identify.Intents = GatewayIntents

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	if err := h.discordSDKClient.Close(); err != nil {
		log.Warn("⚠️ Failed to close Discord session", "error", err)
	}
}

func (h *DiscordEventsHandler) handleReadyEvent(_ *discordgo.Session, r *discordgo.Ready) {
	log.Info("✅ Connected to Discord", "bot", r.User.Username, "guilds", len(r.Guilds))
}

// handleReactionAddedEvent handles when a reaction is added to a message
func (h *DiscordEventsHandler) handleReactionAddedEvent(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	run := func() {
		event := mapToDiscordReactionEvent(s, r)
		log.Debug("🤖 Discord reaction added",
			"emoji", event.EmojiName,
			"user_id", event.UserID,
			"message_id", event.MessageID,
			"guild_id", event.GuildID,
		)

		ctx := context.Background()
		if h.eventTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.eventTimeout)
			defer cancel()
		}

		if _, err := h.reactionsUseCase.HandleReaction(ctx, event); err != nil {
			log.Error("❌ Failed to process Discord reaction", "message_id", event.MessageID, "error", err)
		}
	}

	if h.wrapEvent != nil {
		run = h.wrapEvent("message_reaction_add", run)
	}
	run()
}

// mapToDiscordReactionEvent maps a Discord SDK reaction event to our domain model
func mapToDiscordReactionEvent(s *discordgo.Session, r *discordgo.MessageReactionAdd) models.DiscordReactionEvent {
	return models.DiscordReactionEvent{
		GuildID:       r.GuildID,
		ChannelID:     r.ChannelID,
		MessageID:     r.MessageID,
		UserID:        r.UserID,
		EmojiName:     r.Emoji.Name,
		IsOwnReaction: isOwnReaction(s, r),
	}
}

func isOwnReaction(s *discordgo.Session, r *discordgo.MessageReactionAdd) bool {
	if s != nil && s.State != nil && s.State.User != nil && s.State.User.ID == r.UserID {
		return true
	}
	// reactions from other bots never request translations either
	return r.Member != nil && r.Member.User != nil && r.Member.User.Bot
}
