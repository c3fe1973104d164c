package model

import (
	"errors"
	"fmt"
)

// ErrJobNotFound is returned when a job id is unknown or its record expired
var ErrJobNotFound = errors.New("job not found")

// ErrQuotaExhausted signals that every configured YouTube API key has been
// rotated through without success. Callers should surface this distinctly
// from generic upstream failures (retry later vs broken).
var ErrQuotaExhausted = errors.New("all YouTube API keys exhausted")

// ValidationError rejects bad input synchronously, before any network call
// or job creation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError with a formatted message
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ParseError marks a structural scraping failure (marker not found, malformed
// embedded JSON). Never retried: retrying bad input wastes quota and hides a
// real regression.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// UpstreamError carries a non-quota upstream failure with its status code
type UpstreamError struct {
	StatusCode int
	Msg        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Msg)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsParse reports whether err is a ParseError
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
