package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "bot.lock")

	first, err := NewInstanceLock(lockPath, "token")
	require.NoError(t, err)
	require.NoError(t, first.TryLock())

	second, err := NewInstanceLock(lockPath, "token")
	require.NoError(t, err)
	assert.Error(t, second.TryLock(), "second instance should not acquire the lock")

	require.NoError(t, first.Unlock())
	assert.NoError(t, second.TryLock(), "lock should be free after unlock")
	assert.NoError(t, second.Unlock())
}

func TestInstanceLockDefaultPathIsKeyedByToken(t *testing.T) {
	a, err := NewInstanceLock("", "token-a")
	require.NoError(t, err)
	b, err := NewInstanceLock("", "token-b")
	require.NoError(t, err)

	assert.NotEqual(t, a.GetLockPath(), b.GetLockPath())
	assert.Equal(t, "echolang", filepath.Base(filepath.Dir(a.GetLockPath())))
}

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "fine") })
	assert.PanicsWithValue(t, "invariant violated - broken", func() { AssertInvariant(false, "broken") })
}
