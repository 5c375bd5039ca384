package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveSessionsGauge))

	SetActiveSessions(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(ActiveSessionsGauge))
}

func TestObserveSince(t *testing.T) {
	observer := TranslatorDuration.WithLabelValues("test")
	before := testutil.CollectAndCount(TranslatorDuration)

	elapsed := ObserveSince(observer, time.Now().Add(-time.Second))

	assert.GreaterOrEqual(t, elapsed, time.Second)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(TranslatorDuration), before)
}

func TestReactionsTotalByOutcome(t *testing.T) {
	counter := ReactionsTotal.WithLabelValues("dispatched")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
