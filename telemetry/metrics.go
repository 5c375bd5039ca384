// Package telemetry exposes the bot's Prometheus metrics.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reaction router
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echolang_reactions_total",
		Help: "Reaction events seen by the router, by outcome",
	}, []string{"outcome"})

	// Thread lifecycle
	ThreadsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echolang_threads_created_total",
		Help: "Translation threads created",
	})
	ThreadCreationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echolang_thread_creation_failures_total",
		Help: "Translation thread creation failures, by reason",
	}, []string{"reason"})
	ThreadDeletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echolang_thread_deletions_total",
		Help: "Idle translation threads reclaimed, by result",
	}, []string{"result"})
	ActiveSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "echolang_active_sessions",
		Help: "Messages that currently own a translation thread",
	})

	// Translation coordinator
	TranslationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echolang_translations_total",
		Help: "Translation requests, by outcome status",
	}, []string{"status"})
	TranslationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echolang_translation_failures_total",
		Help: "Translator attempt failures, by failure kind",
	}, []string{"kind"})
	TranslatorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "echolang_translator_duration_seconds",
		Help:    "Translator call duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)

// SetActiveSessions records the current size of the session index.
func SetActiveSessions(n int) { ActiveSessionsGauge.Set(float64(n)) }

// ObserveSince records the time elapsed since start in the given observer.
func ObserveSince(obs prometheus.Observer, start time.Time) time.Duration {
	d := time.Since(start)
	obs.Observe(d.Seconds())
	return d
}
