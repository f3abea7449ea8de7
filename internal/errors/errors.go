package errors

import (
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeCredential
	ErrorTypeLockout
	ErrorTypeUI
	ErrorTypeWatcher
	ErrorTypeTheme
	ErrorTypeAudio
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeCredential:
		return "credential"
	case ErrorTypeLockout:
		return "lockout"
	case ErrorTypeUI:
		return "ui"
	case ErrorTypeWatcher:
		return "watcher"
	case ErrorTypeTheme:
		return "theme"
	case ErrorTypeAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewCredentialError creates a new credential store or hashing error
func NewCredentialError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeCredential,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewLockoutError creates a new lockout state error; path names the
// backing database when there is one
func NewLockoutError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeLockout,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewUIError creates a new UI error
func NewUIError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeUI,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewWatcherError creates a new watcher error
func NewWatcherError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeWatcher,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewThemeError creates a new theme error
func NewThemeError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeTheme,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewAudioError creates a new audio output error
func NewAudioError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeAudio,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
