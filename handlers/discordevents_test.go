package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/usecases/reactions"
)

const testBotID = "bot-xyz"

func setupDiscordEventsTest(t *testing.T, wrap EventWrapper) (*DiscordEventsHandler, *discordgo.Session, *reactions.MockReactionsUseCase) {
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.State.User = &discordgo.User{ID: testBotID, Username: "echolang", Bot: true}

	useCase := new(reactions.MockReactionsUseCase)
	t.Cleanup(func() { useCase.AssertExpectations(t) })

	return NewDiscordEventsHandler(session, useCase, wrap, time.Second), session, useCase
}

func reactionAdd(userID, emoji string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{
			UserID:    userID,
			MessageID: "msg-1",
			ChannelID: "chan-1",
			GuildID:   "guild-1",
			Emoji:     discordgo.Emoji{Name: emoji},
		},
	}
}

func TestNewDiscordEventsHandlerSetsIntents(t *testing.T) {
	_, session, _ := setupDiscordEventsTest(t, nil)

	assert.Equal(t, GatewayIntents, session.Identify.Intents)
	assert.NotZero(t, session.Identify.Intents&discordgo.IntentsMessageContent)
	assert.NotZero(t, session.Identify.Intents&discordgo.IntentsGuildMessageReactions)
}

func TestHandleReactionAddedEvent(t *testing.T) {
	t.Run("ForwardsMappedEvent", func(t *testing.T) {
		handler, session, useCase := setupDiscordEventsTest(t, nil)

		useCase.On("HandleReaction", mock.Anything, models.DiscordReactionEvent{
			GuildID:   "guild-1",
			ChannelID: "chan-1",
			MessageID: "msg-1",
			UserID:    "user-1",
			EmojiName: "🇫🇷",
		}).Run(func(args mock.Arguments) {
			_, hasDeadline := args.Get(0).(context.Context).Deadline()
			assert.True(t, hasDeadline)
		}).Return(models.RouteOutcome{Dispatched: true}, nil).Once()

		handler.handleReactionAddedEvent(session, reactionAdd("user-1", "🇫🇷"))
	})

	t.Run("MarksOwnReaction", func(t *testing.T) {
		handler, session, useCase := setupDiscordEventsTest(t, nil)

		useCase.On("HandleReaction", mock.Anything, mock.MatchedBy(func(e models.DiscordReactionEvent) bool {
			return e.IsOwnReaction && e.UserID == testBotID
		})).Return(models.IgnoredRoute(models.RouteIgnoreOwnReaction), nil).Once()

		handler.handleReactionAddedEvent(session, reactionAdd(testBotID, "❌"))
	})

	t.Run("MarksOtherBotReaction", func(t *testing.T) {
		handler, session, useCase := setupDiscordEventsTest(t, nil)
		event := reactionAdd("other-bot", "🇩🇪")
		event.Member = &discordgo.Member{User: &discordgo.User{ID: "other-bot", Bot: true}}

		useCase.On("HandleReaction", mock.Anything, mock.MatchedBy(func(e models.DiscordReactionEvent) bool {
			return e.IsOwnReaction
		})).Return(models.IgnoredRoute(models.RouteIgnoreOwnReaction), nil).Once()

		handler.handleReactionAddedEvent(session, event)
	})

	t.Run("UseCaseErrorIsSwallowed", func(t *testing.T) {
		handler, session, useCase := setupDiscordEventsTest(t, nil)

		useCase.On("HandleReaction", mock.Anything, mock.Anything).
			Return(models.RouteOutcome{}, errors.New("fetch failed")).Once()

		assert.NotPanics(t, func() { handler.handleReactionAddedEvent(session, reactionAdd("user-1", "🇫🇷")) })
	})

	t.Run("RunsThroughWrapper", func(t *testing.T) {
		var wrappedName string
		wrap := func(eventName string, fn func()) func() {
			wrappedName = eventName
			return fn
		}
		handler, session, useCase := setupDiscordEventsTest(t, wrap)

		useCase.On("HandleReaction", mock.Anything, mock.Anything).Return(models.RouteOutcome{}, nil).Once()

		handler.handleReactionAddedEvent(session, reactionAdd("user-1", "🇫🇷"))

		assert.Equal(t, "message_reaction_add", wrappedName)
	})
}
