package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict")

	// ErrMissingData means a required field (fixture difficulty, position,
	// price) is absent for a player being scored. The player is skipped, never
	// scored with fabricated defaults.
	ErrMissingData = errors.New("missing required player data")

	// ErrUntrainedModel means prediction was requested from the regression
	// strategy before Fit was called.
	ErrUntrainedModel = errors.New("model has not been trained")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeMissingData = "MISSING_DATA"
	ErrCodeUpstream    = "UPSTREAM_ERROR"
	ErrCodePrediction  = "PREDICTION_ERROR"
)
