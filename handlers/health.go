package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
)

type StatusResponse struct {
	Provider              string     `json:"provider"`
	RetryAttempts         int        `json:"retry_attempts"`
	RateLimitDelaySeconds float64    `json:"rate_limit_delay_seconds"`
	BackoffBaseSeconds    float64    `json:"backoff_base_seconds"`
	MaxTextLength         int        `json:"max_text_length"`
	DetectorEnabled       bool       `json:"detector_enabled"`
	LastRequestAt         *time.Time `json:"last_request_at,omitempty"`
	ActiveSessions        int        `json:"active_sessions"`
}

type TranslationRecordResponse struct {
	ID             string    `json:"id"`
	ThreadID       string    `json:"thread_id"`
	LanguageCode   string    `json:"language_code"`
	SourceLanguage string    `json:"source_language,omitempty"`
	RequesterID    string    `json:"requester_id,omitempty"`
	Attempts       int       `json:"attempts"`
	CreatedAt      time.Time `json:"created_at"`
}

// OpsHTTPHandler serves the operational endpoints: health, metrics, status and translation history
type OpsHTTPHandler struct {
	sessionsService     services.SessionsService
	translationsService services.TranslationsService
	// translationLog is nil when no database is configured
	translationLog services.TranslationLogService
}

func NewOpsHTTPHandler(
	sessionsService services.SessionsService,
	translationsService services.TranslationsService,
	translationLog services.TranslationLogService,
) *OpsHTTPHandler {
	return &OpsHTTPHandler{
		sessionsService:     sessionsService,
		translationsService: translationsService,
		translationLog:      translationLog,
	}
}

func (h *OpsHTTPHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *OpsHTTPHandler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, toStatusResponse(h.translationsService.Status(), h.sessionsService.ActiveCount()))
}

func (h *OpsHTTPHandler) HandleListTranslations(w http.ResponseWriter, r *http.Request) {
	if h.translationLog == nil {
		http.Error(w, "translation history is not enabled", http.StatusNotFound)
		return
	}

	messageID := mux.Vars(r)["messageID"]
	records, err := h.translationLog.GetTranslationsByMessageID(r.Context(), messageID)
	if err != nil {
		log.Error("❌ Failed to list translations", "message_id", messageID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	response := make([]TranslationRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, TranslationRecordResponse{
			ID:             record.ID,
			ThreadID:       record.ThreadID,
			LanguageCode:   record.LanguageCode,
			SourceLanguage: record.SourceLanguage,
			RequesterID:    record.RequesterID,
			Attempts:       record.Attempts,
			CreatedAt:      record.CreatedAt,
		})
	}
	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *OpsHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Info("🚀 Registering operational endpoints")

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/status", h.HandleStatus).Methods("GET")
	router.HandleFunc("/messages/{messageID}/translations", h.HandleListTranslations).Methods("GET")

	log.Info("✅ GET /health, /metrics, /status, /messages/{messageID}/translations endpoints registered")
}

func (h *OpsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("❌ Failed to encode JSON response", "error", err)
	}
}

func toStatusResponse(status models.TranslatorStatus, activeSessions int) StatusResponse {
	response := StatusResponse{
		Provider:              status.Provider,
		RetryAttempts:         status.Attempts,
		RateLimitDelaySeconds: status.RateLimitDelay.Seconds(),
		BackoffBaseSeconds:    status.BackoffBase.Seconds(),
		MaxTextLength:         status.MaxTextLength,
		DetectorEnabled:       status.DetectorEnabled,
		ActiveSessions:        activeSessions,
	}
	if !status.LastRequestAt.IsZero() {
		lastRequestAt := status.LastRequestAt
		response.LastRequestAt = &lastRequestAt
	}
	return response
}
