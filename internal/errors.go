package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is returned when no auth token could be found in any config source
	ErrNoToken = errors.New("no token configured")
	// ErrNoUser is returned when the user resource came back empty
	ErrNoUser = errors.New("could not load the local user")
	// ErrNoRooms is returned when the account has not joined any room
	ErrNoRooms = errors.New("no rooms available")
	// ErrRoomNotFound is returned when a room name or id does not match the catalog
	ErrRoomNotFound = errors.New("room not found")
	// ErrChannelClosed is returned by a worker whose inbound channel was closed
	ErrChannelClosed = errors.New("channel closed")
)

// RequestError represents a failed HTTP exchange with the API
type RequestError struct {
	Method string
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request error: %s %s: status %d: %v", e.Method, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("request error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError represents a response body that could not be decoded
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConfigError represents a missing or invalid configuration value
type ConfigError struct {
	Path  string // config file, empty when the value came from the environment
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config error [%s]: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config error [%s] %s: %v", e.Field, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// WorkerError represents the termination of a background worker
type WorkerError struct {
	Worker string // "poller", "room-switcher", "outbound-sender", "session-owner"
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker error [%s]: %v", e.Worker, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// ExportError represents a failure writing a transcript
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
