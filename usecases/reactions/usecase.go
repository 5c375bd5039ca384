package reactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/languages"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
	"github.com/mythicavalon/EchoLang/telemetry"
)

// TaskWrapper decorates a background task, e.g. with error alerting
type TaskWrapper func(taskName string, task func() error) func() error

// ReactionsUseCase routes flag reactions to the thread manager and the translation coordinator
type ReactionsUseCase struct {
	discordClient       clients.DiscordClient
	sessionsService     services.SessionsService
	translationsService services.TranslationsService
	wrapTask            TaskWrapper

	pool *workerpool.WorkerPool
	// ctx is handed to dispatched translations so they outlive the gateway event
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewReactionsUseCase creates the router with a pool of workers translation requests run on.
// wrapTask may be nil.
func NewReactionsUseCase(
	discordClient clients.DiscordClient,
	sessionsService services.SessionsService,
	translationsService services.TranslationsService,
	workers int,
	wrapTask TaskWrapper,
) *ReactionsUseCase {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &ReactionsUseCase{
		discordClient:       discordClient,
		sessionsService:     sessionsService,
		translationsService: translationsService,
		wrapTask:            wrapTask,
		pool:                workerpool.New(workers),
		ctx:                 ctx,
		cancel:              cancel,
		stopped:             make(chan struct{}),
	}
}

// HandleReaction processes one reaction-added event. Events that are not translation requests are
// ignored with a reason; accepted events have their thread ensured synchronously while the
// translation itself runs on the worker pool.
func (u *ReactionsUseCase) HandleReaction(
	ctx context.Context,
	event models.DiscordReactionEvent,
) (models.RouteOutcome, error) {
	outcome, err := u.route(ctx, event)

	label := "dispatched"
	switch {
	case err != nil:
		label = "error"
	case !outcome.Dispatched:
		label = string(outcome.IgnoreReason)
	}
	telemetry.ReactionsTotal.WithLabelValues(label).Inc()

	return outcome, err
}

func (u *ReactionsUseCase) route(ctx context.Context, event models.DiscordReactionEvent) (models.RouteOutcome, error) {
	if event.IsOwnReaction {
		return models.IgnoredRoute(models.RouteIgnoreOwnReaction), nil
	}

	languageCode, ok := languages.LanguageForEmoji(event.EmojiName)
	if !ok {
		log.Debug("🔍 Reaction is not a supported flag - ignoring", "emoji", event.EmojiName)
		return models.IgnoredRoute(models.RouteIgnoreUnsupportedEmoji), nil
	}

	log.Info("📋 Starting to process flag reaction",
		"emoji", event.EmojiName,
		"language", languageCode,
		"message_id", event.MessageID,
		"user_id", event.UserID,
	)

	message, err := u.discordClient.FetchMessage(ctx, event.ChannelID, event.MessageID)
	if err != nil {
		log.Error("❌ Failed to fetch reacted message", "message_id", event.MessageID, "error", err)
		return models.RouteOutcome{}, fmt.Errorf("failed to fetch message %s: %w", event.MessageID, err)
	}
	if message.GuildID == "" {
		message.GuildID = event.GuildID
	}

	if strings.TrimSpace(message.Content) == "" {
		log.Info("🔍 Reacted message has no text content - ignoring", "message_id", message.ID)
		return models.IgnoredRoute(models.RouteIgnoreEmptyMessage), nil
	}
	if message.Author.Bot {
		log.Info("🔍 Reacted message was written by a bot - ignoring", "message_id", message.ID)
		return models.IgnoredRoute(models.RouteIgnoreBotAuthor), nil
	}

	requester := u.resolveRequester(ctx, event.GuildID, event.UserID)

	thread, created, err := u.sessionsService.EnsureThread(ctx, *message, requester)
	if err != nil {
		if errors.Is(err, core.ErrThreadCreationDenied) {
			log.Warn("⚠️ Not allowed to open a translation thread - marking message",
				"message_id", message.ID, "error", err)
			if reactErr := u.discordClient.AddReaction(ctx, message.ChannelID, message.ID, EmojiCrossMark); reactErr != nil {
				log.Warn("⚠️ Failed to add fallback reaction", "message_id", message.ID, "error", reactErr)
			}
			return models.IgnoredRoute(models.RouteIgnoreThreadDenied), nil
		}

		log.Error("❌ Failed to ensure translation thread", "message_id", message.ID, "error", err)
		return models.RouteOutcome{}, fmt.Errorf("failed to ensure translation thread: %w", err)
	}

	request := models.TranslationRequest{
		Message:      *message,
		LanguageCode: languageCode,
		Requester:    requester,
	}
	if err := u.dispatch(request); err != nil {
		return models.RouteOutcome{}, err
	}

	log.Info("📋 Completed successfully - dispatched translation request",
		"message_id", message.ID,
		"language", languageCode,
		"thread_id", thread.ID,
		"new_thread", created,
	)
	return models.RouteOutcome{
		Dispatched:   true,
		LanguageCode: languageCode,
		ThreadID:     thread.ID,
		NewThread:    created,
	}, nil
}

var ErrUseCaseStopped = errors.New("reactions use case is shut down")

func (u *ReactionsUseCase) dispatch(request models.TranslationRequest) error {
	taskName := fmt.Sprintf("translate message %s to %s", request.Message.ID, request.LanguageCode)
	task := func() error {
		outcome, err := u.translationsService.RequestTranslation(u.ctx, request)
		if err != nil {
			return err
		}
		log.Debug("🔍 Translation request finished",
			"message_id", request.Message.ID,
			"language", request.LanguageCode,
			"status", outcome.Status,
		)
		return nil
	}
	if u.wrapTask != nil {
		task = u.wrapTask(taskName, task)
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.closed {
		return ErrUseCaseStopped
	}

	u.pool.Submit(func() {
		if err := task(); err != nil {
			log.Error("❌ Translation request failed", "task", taskName, "error", err)
		}
	})
	return nil
}

// resolveRequester walks guild member, gateway cache and REST lookups and falls back to a
// synthetic identity, so a requester is always available
func (u *ReactionsUseCase) resolveRequester(ctx context.Context, guildID, userID string) models.Identity {
	if guildID != "" {
		member, err := u.discordClient.GetGuildMember(ctx, guildID, userID)
		switch {
		case err != nil:
			log.Warn("⚠️ Guild member lookup failed", "user_id", userID, "error", err)
		case member.IsPresent():
			return toIdentity(member.MustGet(), models.IdentitySourceGuildMember)
		}
	}

	if cached, ok := u.discordClient.GetCachedUser(userID).Get(); ok {
		return toIdentity(cached, models.IdentitySourceCache)
	}

	user, err := u.discordClient.FetchUser(ctx, userID)
	if err == nil && user != nil {
		return toIdentity(user, models.IdentitySourceFetch)
	}
	log.Warn("⚠️ Could not resolve reacting user - using synthetic identity", "user_id", userID, "error", err)

	return models.NewSyntheticIdentity(userID)
}

func toIdentity(user *clients.DiscordUser, source models.IdentitySource) models.ResolvedIdentity {
	return models.ResolvedIdentity{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Bot:         user.Bot,
		Source:      source,
	}
}

// Shutdown stops accepting work and waits for queued translations. When ctx expires first the
// in-flight translations are cancelled.
func (u *ReactionsUseCase) Shutdown(ctx context.Context) error {
	u.stopOnce.Do(func() {
		u.mu.Lock()
		u.closed = true
		u.mu.Unlock()

		go func() {
			u.pool.StopWait()
			close(u.stopped)
		}()
	})

	select {
	case <-u.stopped:
		u.cancel()
		return nil
	case <-ctx.Done():
		u.cancel()
		<-u.stopped
		return fmt.Errorf("translation workers did not drain in time: %w", ctx.Err())
	}
}
