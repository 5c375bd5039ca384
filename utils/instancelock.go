package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// InstanceLock prevents two bot processes with the same token from running on one host,
// which would otherwise handle every reaction twice.
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

// NewInstanceLock creates a lock at lockPath, or under the temp directory keyed by a
// hash of the bot token when lockPath is empty.
func NewInstanceLock(lockPath, botToken string) (*InstanceLock, error) {
	if lockPath == "" {
		lockDir := filepath.Join(os.TempDir(), "echolang")
		if err := os.MkdirAll(lockDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create echolang temp directory: %w", err)
		}

		sum := sha256.Sum256([]byte(botToken))
		lockPath = filepath.Join(lockDir, hex.EncodeToString(sum[:6])+".lock")
	}

	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the lock
// Returns nil if successful, error if lock is already held or other error occurs
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another echolang instance is already running with this bot token (lock: %s)", l.lockPath)
	}

	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if l.lockFile == nil {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

// GetLockPath returns the path to the lock file
func (l *InstanceLock) GetLockPath() string {
	return l.lockPath
}
