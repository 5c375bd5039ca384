package translations

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/clients/discord"
	"github.com/mythicavalon/EchoLang/config"
	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
	"github.com/mythicavalon/EchoLang/services/sessions"
	"github.com/mythicavalon/EchoLang/testutils"
)

type translationsTestFixture struct {
	service         *TranslationsService
	sessionsService *sessions.SessionsService
	discordClient   *discord.MockDiscordClient
	translator      *clients.MockTranslator
	scheduler       *testutils.FakeScheduler
	config          config.TranslationConfig

	sleepMu sync.Mutex
	sleeps  []time.Duration
}

func setupTranslationsTest(t *testing.T) *translationsTestFixture {
	t.Helper()

	cfg := config.DefaultTranslationConfig()
	cfg.RateLimitDelay = 0

	discordClient := &discord.MockDiscordClient{}
	translator := &clients.MockTranslator{}
	translator.On("Name").Return("mock").Maybe()
	scheduler := testutils.NewFakeScheduler()
	sessionsService := sessions.NewSessionsService(discordClient, scheduler, cfg)

	f := &translationsTestFixture{
		sessionsService: sessionsService,
		discordClient:   discordClient,
		translator:      translator,
		scheduler:       scheduler,
		config:          cfg,
	}
	f.service = f.newService(nil, nil)

	t.Cleanup(func() {
		discordClient.AssertExpectations(t)
		translator.AssertExpectations(t)
	})
	return f
}

func (f *translationsTestFixture) newService(
	detector clients.LanguageDetector,
	translationLog services.TranslationLogService,
) *TranslationsService {
	service := NewTranslationsService(f.sessionsService, f.discordClient, f.translator, detector, translationLog, f.config)
	service.jitter = func() time.Duration { return 200 * time.Millisecond }
	service.sleep = func(ctx context.Context, d time.Duration) error {
		f.sleepMu.Lock()
		defer f.sleepMu.Unlock()
		f.sleeps = append(f.sleeps, d)
		return nil
	}
	return service
}

func testMessage() models.DiscordMessage {
	return models.DiscordMessage{
		ID:        "msg-1",
		ChannelID: "channel-1",
		GuildID:   "guild-1",
		Content:   "Hello world",
		Author:    models.DiscordAuthor{ID: "author-1", Username: "bob"},
	}
}

func testRequester() models.Identity {
	return models.ResolvedIdentity{ID: "user-1", Username: "alice", DisplayName: "Alice"}
}

// openThread creates the session for testMessage, as the router does before dispatching
func (f *translationsTestFixture) openThread(t *testing.T) {
	t.Helper()
	f.discordClient.On("CreateThread", mock.Anything, "channel-1", "msg-1", f.config.ThreadName, f.config.AutoArchiveMinutes).
		Return(&clients.DiscordThreadResponse{ThreadID: "thread-1", ThreadName: f.config.ThreadName}, nil).Once()

	_, _, err := f.sessionsService.EnsureThread(context.Background(), testMessage(), testRequester())
	require.NoError(t, err)
}

func request(languageCode string) models.TranslationRequest {
	return models.TranslationRequest{
		Message:      testMessage(),
		LanguageCode: languageCode,
		Requester:    testRequester(),
	}
}

func TestRequestTranslation_Success(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(&clients.TranslationResult{Text: "Bonjour le monde", SourceLanguage: "en"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", clients.DiscordEmbed{
		Title:       "Translation (French)",
		Description: "Bonjour le monde\n\n*Detected source: EN*",
		Color:       translationEmbedColor,
		Footer:      "Translated by Alice",
	}).Return(&clients.DiscordPostMessageResponse{ChannelID: "thread-1", MessageID: "post-1"}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
	assert.Equal(t, "Bonjour le monde", outcome.Text)
	assert.Equal(t, "en", outcome.SourceLanguage)
	assert.Equal(t, 1, outcome.Attempts)
	assert.False(t, outcome.NoTranslationNeeded)

	snapshot := f.sessionsService.Get("msg-1").MustGet()
	assert.Equal(t, []string{"fr"}, snapshot.TranslatedLanguages)
	assert.Empty(t, snapshot.PendingLanguages)
	assert.Empty(t, f.sleeps)
	assert.False(t, f.service.Status().LastRequestAt.IsZero())
}

func TestRequestTranslation_ResetsTimerBeforeTranslating(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)
	require.Len(t, f.scheduler.Timers(), 1)

	f.translator.On("Translate", mock.Anything, "Hello world", "de").
		Run(func(args mock.Arguments) {
			// the timer armed at thread creation is already replaced when the translator runs
			timers := f.scheduler.Timers()
			assert.Len(t, timers, 2)
			assert.True(t, timers[0].IsStopped())
		}).
		Return(&clients.TranslationResult{Text: "Hallo Welt"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	_, err := f.service.RequestTranslation(context.Background(), request("de"))

	require.NoError(t, err)
	assert.Len(t, f.scheduler.Live(), 1)
}

func TestRequestTranslation_AlreadyDelivered(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(&clients.TranslationResult{Text: "Bonjour le monde"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	first, err := f.service.RequestTranslation(context.Background(), request("fr"))
	require.NoError(t, err)
	require.Equal(t, models.TranslationOutcomeDelivered, first.Status)

	second, err := f.service.RequestTranslation(context.Background(), request("fr"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeAlreadyDelivered, second.Status)
	f.translator.AssertNumberOfCalls(t, "Translate", 1)
	f.discordClient.AssertNumberOfCalls(t, "SendEmbed", 1)
}

func TestRequestTranslation_InProgress(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	claim, err := f.sessionsService.ClaimLanguage("msg-1", "fr")
	require.NoError(t, err)
	require.Equal(t, models.ClaimResultClaimed, claim)

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeInProgress, outcome.Status)
	f.translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestTranslation_ConcurrentSameLanguageTranslatesOnce(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "es").
		Run(func(args mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
		Return(&clients.TranslationResult{Text: "Hola mundo"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	var wg sync.WaitGroup
	var mu sync.Mutex
	statuses := make(map[models.TranslationOutcomeStatus]int)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := f.service.RequestTranslation(context.Background(), request("es"))
			assert.NoError(t, err)
			mu.Lock()
			statuses[outcome.Status]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, statuses[models.TranslationOutcomeDelivered])
	assert.Equal(t, 9, statuses[models.TranslationOutcomeInProgress]+statuses[models.TranslationOutcomeAlreadyDelivered])
	f.translator.AssertNumberOfCalls(t, "Translate", 1)
}

func TestRequestTranslation_ExhaustedTimeouts(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(nil, core.NewTranslationError(core.TranslationFailureTimeout, errors.New("read timeout"))).Times(3)
	f.discordClient.On("SendMessage", mock.Anything, "thread-1", mock.MatchedBy(func(content string) bool {
		return strings.Contains(content, "French") &&
			strings.Contains(content, "timed out") &&
			strings.Contains(content, "3 attempt")
	})).Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeFailed, outcome.Status)
	assert.Equal(t, core.TranslationFailureTimeout, outcome.FailureKind)
	assert.Equal(t, 3, outcome.Attempts)
	assert.False(t, f.sessionsService.HasTranslated("msg-1", "fr"))
	assert.Empty(t, f.sessionsService.Get("msg-1").MustGet().PendingLanguages)

	// base 1s doubled per retry plus the fixed test jitter
	assert.Equal(t, []time.Duration{1200 * time.Millisecond, 2200 * time.Millisecond}, f.sleeps)
	f.discordClient.AssertNotCalled(t, "SendEmbed", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestTranslation_FailedLanguageCanBeRetried(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "it").
		Return(nil, errors.New("429 Too Many Requests")).Times(3)
	f.discordClient.On("SendMessage", mock.Anything, "thread-1", mock.MatchedBy(func(content string) bool {
		return strings.Contains(content, "rate limiting")
	})).Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("it"))
	require.NoError(t, err)
	require.Equal(t, core.TranslationFailureRateLimited, outcome.FailureKind)

	f.translator.On("Translate", mock.Anything, "Hello world", "it").
		Return(&clients.TranslationResult{Text: "Ciao mondo"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err = f.service.RequestTranslation(context.Background(), request("it"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
	assert.True(t, f.sessionsService.HasTranslated("msg-1", "it"))
}

func TestRequestTranslation_RecoversOnRetry(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "pt").
		Return(&clients.TranslationResult{Text: "[Translation failed - PT]"}, nil).Once()
	f.translator.On("Translate", mock.Anything, "Hello world", "pt").
		Return(&clients.TranslationResult{Text: "Olá mundo"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("pt"))

	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
	assert.Equal(t, "Olá mundo", outcome.Text)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Len(t, f.sleeps, 1)
}

func TestRequestTranslation_SelfTranslationGuard(t *testing.T) {
	t.Run("IdenticalOutputIsDeliveredAsNoTranslationNeeded", func(t *testing.T) {
		f := setupTranslationsTest(t)
		f.openThread(t)

		f.translator.On("Translate", mock.Anything, "Hello world", "fr").
			Return(&clients.TranslationResult{Text: "hello WORLD"}, nil).Once()
		f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.MatchedBy(func(embed clients.DiscordEmbed) bool {
			return strings.Contains(embed.Description, "No translation needed")
		})).Return(&clients.DiscordPostMessageResponse{}, nil).Once()

		outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

		require.NoError(t, err)
		assert.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
		assert.True(t, outcome.NoTranslationNeeded)
		assert.True(t, f.sessionsService.HasTranslated("msg-1", "fr"))
	})

	t.Run("BaseLanguageIsNotFlagged", func(t *testing.T) {
		f := setupTranslationsTest(t)
		f.openThread(t)

		f.translator.On("Translate", mock.Anything, "Hello world", "en").
			Return(&clients.TranslationResult{Text: "Hello world", SourceLanguage: "en"}, nil).Once()
		f.discordClient.On("SendEmbed", mock.Anything, "thread-1", clients.DiscordEmbed{
			Title:       "Translation (English)",
			Description: "Hello world",
			Color:       translationEmbedColor,
			Footer:      "Translated by Alice",
		}).Return(&clients.DiscordPostMessageResponse{}, nil).Once()

		outcome, err := f.service.RequestTranslation(context.Background(), request("en"))

		require.NoError(t, err)
		assert.False(t, outcome.NoTranslationNeeded)
	})
}

func TestRequestTranslation_ThreadDeletedExternally(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(&clients.TranslationResult{Text: "Bonjour le monde"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(nil, core.ErrNotFound).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, models.TranslationOutcomeFailed, outcome.Status)
	assert.True(t, f.sessionsService.Get("msg-1").IsAbsent())
	assert.Empty(t, f.scheduler.Live())
}

func TestRequestTranslation_NoSession(t *testing.T) {
	f := setupTranslationsTest(t)

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Equal(t, models.TranslationOutcomeFailed, outcome.Status)
}

func TestRequestTranslation_DetectorFallback(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	detector := &clients.MockLanguageDetector{}
	detector.On("DetectLanguage", mock.Anything, "Hello world").Return(mo.Some("en"), nil).Once()
	t.Cleanup(func() { detector.AssertExpectations(t) })
	f.service = f.newService(detector, nil)

	f.translator.On("Translate", mock.Anything, "Hello world", "es").
		Return(&clients.TranslationResult{Text: "Hola mundo"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.MatchedBy(func(embed clients.DiscordEmbed) bool {
		return embed.Description == "Hola mundo\n\n*Detected source: EN*"
	})).Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("es"))

	require.NoError(t, err)
	assert.Equal(t, "en", outcome.SourceLanguage)
	assert.True(t, f.service.Status().DetectorEnabled)
}

func TestRequestTranslation_RecordsHistory(t *testing.T) {
	f := setupTranslationsTest(t)
	f.openThread(t)

	translationLog := &services.MockTranslationLogService{}
	translationLog.On("RecordTranslation", mock.Anything, mock.MatchedBy(func(record *models.TranslationRecord) bool {
		return record.MessageID == "msg-1" &&
			record.ThreadID == "thread-1" &&
			record.LanguageCode == "fr" &&
			record.RequesterID == "user-1" &&
			record.Attempts == 1
	})).Return(errors.New("db down")).Once()
	t.Cleanup(func() { translationLog.AssertExpectations(t) })
	f.service = f.newService(nil, translationLog)

	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(&clients.TranslationResult{Text: "Bonjour le monde"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Once()

	outcome, err := f.service.RequestTranslation(context.Background(), request("fr"))

	// history failures never fail the delivery
	require.NoError(t, err)
	assert.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
}

func TestTwoLanguagesShareOneThreadAndOneDeletion(t *testing.T) {
	f := setupTranslationsTest(t)
	ctx := context.Background()

	f.discordClient.On("CreateThread", mock.Anything, "channel-1", "msg-1", mock.Anything, mock.Anything).
		Return(&clients.DiscordThreadResponse{ThreadID: "thread-1"}, nil).Once()
	f.translator.On("Translate", mock.Anything, "Hello world", "fr").
		Return(&clients.TranslationResult{Text: "Bonjour le monde"}, nil).Once()
	f.translator.On("Translate", mock.Anything, "Hello world", "es").
		Return(&clients.TranslationResult{Text: "Hola mundo"}, nil).Once()
	f.discordClient.On("SendEmbed", mock.Anything, "thread-1", mock.Anything).
		Return(&clients.DiscordPostMessageResponse{}, nil).Twice()
	f.discordClient.On("DeleteThread", mock.Anything, "thread-1").Return(nil).Once()

	for _, languageCode := range []string{"fr", "es"} {
		_, _, err := f.sessionsService.EnsureThread(ctx, testMessage(), testRequester())
		require.NoError(t, err)
		outcome, err := f.service.RequestTranslation(ctx, request(languageCode))
		require.NoError(t, err)
		require.Equal(t, models.TranslationOutcomeDelivered, outcome.Status)
	}

	assert.Equal(t, []string{"es", "fr"}, f.sessionsService.Get("msg-1").MustGet().TranslatedLanguages)

	live := f.scheduler.Live()
	require.Len(t, live, 1)
	assert.Equal(t, 120*time.Second, live[0].Delay)
	assert.Same(t, f.scheduler.Timers()[len(f.scheduler.Timers())-1], live[0])

	assert.Equal(t, 1, f.scheduler.FireLive())
	f.discordClient.AssertNumberOfCalls(t, "DeleteThread", 1)
	assert.True(t, f.sessionsService.Get("msg-1").IsAbsent())
}
