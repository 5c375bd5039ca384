package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is a sentinel error for "not found" cases.
// Deleting a thread that is already gone surfaces as ErrNotFound.
var ErrNotFound = errors.New("not found")

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTransientPlatform    = errors.New("transient platform error")
	ErrThreadCreationDenied = errors.New("thread creation denied")
	ErrThreadCreationFailed = errors.New("thread creation failed")
	ErrSessionNotFound      = errors.New("translation session not found")
)

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// IsPermissionDeniedError checks if an error is a "permission denied" error
func IsPermissionDeniedError(err error) bool {
	return err != nil && errors.Is(err, ErrPermissionDenied)
}

type TranslationFailureKind string

const (
	TranslationFailureTimeout             TranslationFailureKind = "timeout"
	TranslationFailureRateLimited         TranslationFailureKind = "rate_limited"
	TranslationFailureQuotaExceeded       TranslationFailureKind = "quota_exceeded"
	TranslationFailureUnsupportedLanguage TranslationFailureKind = "unsupported_language"
	TranslationFailureUnknown             TranslationFailureKind = "unknown"
)

// Description returns the user-facing explanation for a failure kind.
func (k TranslationFailureKind) Description() string {
	switch k {
	case TranslationFailureTimeout:
		return "the translation service timed out"
	case TranslationFailureRateLimited:
		return "the translation service is rate limiting requests"
	case TranslationFailureQuotaExceeded:
		return "the translation quota has been exceeded"
	case TranslationFailureUnsupportedLanguage:
		return "this language is not supported by the translation service"
	default:
		return "the translation service returned an unexpected error"
	}
}

// TranslationError is returned by translators with the failure kind preserved
type TranslationError struct {
	Kind TranslationFailureKind
	Err  error
}

func NewTranslationError(kind TranslationFailureKind, err error) *TranslationError {
	return &TranslationError{Kind: kind, Err: err}
}

func (e *TranslationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("translation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("translation failed (%s): %v", e.Kind, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// IsTranslationError checks if an error is a TranslationError
func IsTranslationError(err error) (*TranslationError, bool) {
	var translationErr *TranslationError
	if errors.As(err, &translationErr) {
		return translationErr, true
	}
	return nil, false
}

// TranslationFailureKindOf extracts the failure kind of an error returned by a translator.
func TranslationFailureKindOf(err error) TranslationFailureKind {
	if err == nil {
		return TranslationFailureUnknown
	}
	if translationErr, ok := IsTranslationError(err); ok {
		return translationErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TranslationFailureTimeout
	}
	return ClassifyTranslationFailure(err.Error())
}

// ClassifyTranslationFailure guesses a failure kind from a backend error message.
func ClassifyTranslationFailure(message string) TranslationFailureKind {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "connection"):
		return TranslationFailureTimeout
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests"):
		return TranslationFailureRateLimited
	case strings.Contains(msg, "quota") || strings.Contains(msg, "limit exceeded"):
		return TranslationFailureQuotaExceeded
	case strings.Contains(msg, "unsupported language") || strings.Contains(msg, "invalid language") ||
		strings.Contains(msg, "not supported"):
		return TranslationFailureUnsupportedLanguage
	default:
		return TranslationFailureUnknown
	}
}
