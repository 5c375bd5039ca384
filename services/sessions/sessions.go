package sessions

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samber/mo"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/config"
	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
	"github.com/mythicavalon/EchoLang/telemetry"
)

const deleteThreadTimeout = 10 * time.Second

var _ services.SessionsService = (*SessionsService)(nil)

var ErrServiceClosed = errors.New("sessions service is shut down")

// DeletionErrorHandler is notified when reclaiming an idle thread fails.
// The session is purged regardless.
type DeletionErrorHandler func(ctx context.Context, messageID, threadID string, err error)

type session struct {
	id             string
	messageID      string
	channelID      string
	thread         models.ThreadHandle
	translated     map[string]struct{}
	pending        map[string]struct{}
	state          models.SessionState
	generation     uint64
	timer          clients.Timer
	createdAt      time.Time
	lastActivityAt time.Time
}

type SessionsService struct {
	discordClient clients.DiscordClient
	scheduler     clients.Scheduler
	config        config.TranslationConfig

	// locks serializes every read-modify-write of a single message's session
	locks *keyedMutex

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool

	onDeletionError DeletionErrorHandler
}

func NewSessionsService(
	discordClient clients.DiscordClient,
	scheduler clients.Scheduler,
	cfg config.TranslationConfig,
) *SessionsService {
	return &SessionsService{
		discordClient: discordClient,
		scheduler:     scheduler,
		config:        cfg,
		locks:         newKeyedMutex(),
		sessions:      make(map[string]*session),
	}
}

// SetDeletionErrorHandler registers a callback for failed thread deletions
func (s *SessionsService) SetDeletionErrorHandler(handler DeletionErrorHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDeletionError = handler
}

// EnsureThread returns the thread of the message's session, creating the thread and the session
// on first use. The boolean result reports whether a new thread was created. Reusing an existing
// thread counts as activity and restarts its idle deletion timer.
func (s *SessionsService) EnsureThread(
	ctx context.Context,
	message models.DiscordMessage,
	requester models.Identity,
) (models.ThreadHandle, bool, error) {
	unlock := s.locks.Lock(message.ID)
	defer unlock()

	if s.isClosed() {
		return models.ThreadHandle{}, false, ErrServiceClosed
	}

	if sess, ok := s.lookup(message.ID); ok {
		s.resetTimerLocked(sess)
		log.Debug("🧵 Reusing translation thread", "message_id", message.ID, "thread_id", sess.thread.ID)
		return sess.thread, false, nil
	}

	log.Info(
		"📋 Starting to create translation thread",
		"message_id", message.ID,
		"channel_id", message.ChannelID,
		"requester", requester.GetDisplayName(),
	)

	thread, err := s.discordClient.CreateThread(
		ctx,
		message.ChannelID,
		message.ID,
		s.config.ThreadName,
		s.config.AutoArchiveMinutes,
	)
	if err != nil {
		if core.IsPermissionDeniedError(err) {
			telemetry.ThreadCreationFailuresTotal.WithLabelValues("permission_denied").Inc()
			return models.ThreadHandle{}, false, fmt.Errorf("%w: %w", core.ErrThreadCreationDenied, err)
		}
		telemetry.ThreadCreationFailuresTotal.WithLabelValues("platform_error").Inc()
		return models.ThreadHandle{}, false, fmt.Errorf("%w: %w", core.ErrThreadCreationFailed, err)
	}

	now := time.Now()
	sess := &session{
		id:        core.NewID("tss"),
		messageID: message.ID,
		channelID: message.ChannelID,
		thread: models.ThreadHandle{
			ID:              thread.ThreadID,
			Name:            thread.ThreadName,
			ParentChannelID: message.ChannelID,
		},
		translated:     make(map[string]struct{}),
		pending:        make(map[string]struct{}),
		state:          models.SessionStateActive,
		createdAt:      now,
		lastActivityAt: now,
	}

	s.mu.Lock()
	s.sessions[message.ID] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	telemetry.ThreadsCreatedTotal.Inc()
	telemetry.SetActiveSessions(count)

	s.resetTimerLocked(sess)

	log.Info(
		"📋 Completed successfully - created translation thread",
		"message_id", message.ID,
		"thread_id", sess.thread.ID,
		"session_id", sess.id,
	)
	return sess.thread, true, nil
}

// ResetDeletionTimer cancels the pending deletion of the message's thread and schedules a new one
// a full idle window from now.
func (s *SessionsService) ResetDeletionTimer(messageID string) error {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return fmt.Errorf("reset deletion timer for message %s: %w", messageID, core.ErrSessionNotFound)
	}

	s.resetTimerLocked(sess)
	return nil
}

// resetTimerLocked must be called with the session's key lock held
func (s *SessionsService) resetTimerLocked(sess *session) {
	sess.generation++
	generation := sess.generation
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.lastActivityAt = time.Now()

	messageID := sess.messageID
	sess.timer = s.scheduler.AfterFunc(s.config.IdleDeletionWindow, func() {
		s.onTimerFired(messageID, generation)
	})

	log.Debug(
		"⏱️ Scheduled thread deletion",
		"message_id", messageID,
		"generation", generation,
		"delay", s.config.IdleDeletionWindow,
	)
}

func (s *SessionsService) onTimerFired(messageID string, generation uint64) {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok || sess.generation != generation || sess.state != models.SessionStateActive {
		// superseded by a newer timer or already torn down
		return
	}

	sess.timer = nil
	s.destroyLocked(context.Background(), sess, true)
}

// destroyLocked deletes the session's thread and purges the session.
// The purge runs even when the delete call fails or panics.
func (s *SessionsService) destroyLocked(ctx context.Context, sess *session, deleteThread bool) (err error) {
	sess.state = models.SessionStateDeleting

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while deleting thread %s: %v", sess.thread.ID, r)
		}
		if err != nil {
			telemetry.ThreadDeletionsTotal.WithLabelValues("error").Inc()
			log.Error(
				"❌ Failed to delete translation thread",
				"message_id", sess.messageID,
				"thread_id", sess.thread.ID,
				"error", err,
			)
			s.reportDeletionError(sess, err)
		}
		s.purgeLocked(sess)
	}()

	if !deleteThread {
		return nil
	}

	deleteCtx, cancel := context.WithTimeout(ctx, deleteThreadTimeout)
	defer cancel()

	if err := s.discordClient.DeleteThread(deleteCtx, sess.thread.ID); err != nil {
		if core.IsNotFoundError(err) {
			telemetry.ThreadDeletionsTotal.WithLabelValues("already_gone").Inc()
			log.Info("🗑️ Translation thread was already deleted", "message_id", sess.messageID, "thread_id", sess.thread.ID)
			return nil
		}
		return err
	}

	telemetry.ThreadDeletionsTotal.WithLabelValues("deleted").Inc()
	log.Info("🗑️ Deleted idle translation thread", "message_id", sess.messageID, "thread_id", sess.thread.ID)
	return nil
}

func (s *SessionsService) reportDeletionError(sess *session, err error) {
	s.mu.Lock()
	handler := s.onDeletionError
	s.mu.Unlock()

	if handler != nil {
		handler(context.Background(), sess.messageID, sess.thread.ID, err)
	}
}

func (s *SessionsService) purgeLocked(sess *session) {
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	sess.generation++
	sess.state = models.SessionStateGone

	s.mu.Lock()
	if current, ok := s.sessions[sess.messageID]; ok && current == sess {
		delete(s.sessions, sess.messageID)
	}
	count := len(s.sessions)
	s.mu.Unlock()

	telemetry.SetActiveSessions(count)
}

// MarkTranslated records that a translation into languageCode was posted. Marking twice is a no-op.
func (s *SessionsService) MarkTranslated(messageID, languageCode string) error {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return fmt.Errorf("mark %s translated for message %s: %w", languageCode, messageID, core.ErrSessionNotFound)
	}

	delete(sess.pending, languageCode)
	sess.translated[languageCode] = struct{}{}
	return nil
}

func (s *SessionsService) HasTranslated(messageID, languageCode string) bool {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return false
	}
	_, translated := sess.translated[languageCode]
	return translated
}

// ClaimLanguage atomically checks the dedup gate and reserves the language for the caller.
// A claimed language must be finished with MarkTranslated or ReleaseLanguage.
func (s *SessionsService) ClaimLanguage(messageID, languageCode string) (models.ClaimResult, error) {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return "", fmt.Errorf("claim %s for message %s: %w", languageCode, messageID, core.ErrSessionNotFound)
	}

	if _, translated := sess.translated[languageCode]; translated {
		return models.ClaimResultAlreadyDelivered, nil
	}
	if _, pending := sess.pending[languageCode]; pending {
		return models.ClaimResultInProgress, nil
	}

	sess.pending[languageCode] = struct{}{}
	return models.ClaimResultClaimed, nil
}

// ReleaseLanguage drops an in-flight claim so a later reaction can retry the language
func (s *SessionsService) ReleaseLanguage(messageID, languageCode string) {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	if sess, ok := s.lookup(messageID); ok {
		delete(sess.pending, languageCode)
	}
}

// Invalidate forgets a session whose thread disappeared without the bot deleting it.
// The next qualifying reaction creates a fresh thread.
func (s *SessionsService) Invalidate(messageID string) {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return
	}

	log.Warn("⚠️ Translation thread is gone, dropping session", "message_id", messageID, "thread_id", sess.thread.ID)
	_ = s.destroyLocked(context.Background(), sess, false)
}

// Get returns a snapshot of the message's session
func (s *SessionsService) Get(messageID string) mo.Option[models.TranslationSession] {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return mo.None[models.TranslationSession]()
	}
	return mo.Some(sess.snapshot())
}

func (s *SessionsService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown stops every deletion timer and, when configured, deletes all live threads.
// No new sessions are accepted afterwards.
func (s *SessionsService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	messageIDs := make([]string, 0, len(s.sessions))
	for messageID := range s.sessions {
		messageIDs = append(messageIDs, messageID)
	}
	s.mu.Unlock()

	log.Info("📋 Starting to shut down translation sessions", "count", len(messageIDs))

	var errs []error
	for _, messageID := range messageIDs {
		if err := s.shutdownSession(ctx, messageID); err != nil {
			errs = append(errs, err)
		}
	}

	log.Info("📋 Completed successfully - translation sessions shut down")
	return errors.Join(errs...)
}

func (s *SessionsService) shutdownSession(ctx context.Context, messageID string) error {
	unlock := s.locks.Lock(messageID)
	defer unlock()

	sess, ok := s.lookup(messageID)
	if !ok {
		return nil
	}

	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	return s.destroyLocked(ctx, sess, s.config.CleanupOnShutdown)
}

func (s *SessionsService) lookup(messageID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[messageID]
	return sess, ok
}

func (s *SessionsService) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (sess *session) snapshot() models.TranslationSession {
	return models.TranslationSession{
		ID:                  sess.id,
		MessageID:           sess.messageID,
		ChannelID:           sess.channelID,
		Thread:              sess.thread,
		TranslatedLanguages: sortedKeys(sess.translated),
		PendingLanguages:    sortedKeys(sess.pending),
		State:               sess.state,
		Generation:          sess.generation,
		CreatedAt:           sess.createdAt,
		LastActivityAt:      sess.lastActivityAt,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
