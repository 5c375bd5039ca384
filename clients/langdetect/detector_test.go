package langdetect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinguaDetector_DetectLanguage(t *testing.T) {
	detector := NewLinguaDetector()

	t.Run("French", func(t *testing.T) {
		detected, err := detector.DetectLanguage(context.Background(), "Bonjour tout le monde, comment allez-vous aujourd'hui ?")
		require.NoError(t, err)
		assert.Equal(t, "fr", detected.OrEmpty())
	})

	t.Run("German", func(t *testing.T) {
		detected, err := detector.DetectLanguage(context.Background(), "Ich habe heute keine Zeit, weil ich arbeiten muss.")
		require.NoError(t, err)
		assert.Equal(t, "de", detected.OrEmpty())
	})

	t.Run("TooShort", func(t *testing.T) {
		detected, err := detector.DetectLanguage(context.Background(), " ok ")
		require.NoError(t, err)
		assert.True(t, detected.IsAbsent())
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := detector.DetectLanguage(ctx, "Bonjour tout le monde")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
