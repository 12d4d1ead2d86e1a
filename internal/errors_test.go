package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRequestError(t *testing.T) {
	originalErr := errors.New("connection refused")

	tests := []struct {
		name     string
		err      *RequestError
		contains []string
	}{
		{
			name:     "no response",
			err:      &RequestError{Method: "GET", URL: "https://api.gitter.im/v1/rooms", Err: originalErr},
			contains: []string{"request error", "GET", "/v1/rooms", "connection refused"},
		},
		{
			name:     "with status",
			err:      &RequestError{Method: "POST", URL: "https://api.gitter.im/v1/rooms/r1/chatMessages", Status: 401, Err: originalErr},
			contains: []string{"request error", "POST", "status 401"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("RequestError.Error() = %q, should contain %q", msg, want)
				}
			}
			if !errors.Is(tt.err, originalErr) {
				t.Error("RequestError.Unwrap() should return original error")
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	originalErr := errors.New("unexpected EOF")
	err := &DecodeError{URL: "https://api.gitter.im/v1/user", Err: originalErr}

	if !strings.Contains(err.Error(), "decode error") {
		t.Errorf("DecodeError.Error() should contain 'decode error', got: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "/v1/user") {
		t.Errorf("DecodeError.Error() should contain URL, got: %q", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("DecodeError.Unwrap() should return original error")
	}
}

func TestConfigError(t *testing.T) {
	withPath := &ConfigError{Path: "/home/u/.gitter_gtk/config.yaml", Field: "token", Err: ErrNoToken}
	if !strings.Contains(withPath.Error(), "config error [token]") {
		t.Errorf("ConfigError.Error() = %q, should contain field", withPath.Error())
	}
	if !strings.Contains(withPath.Error(), "config.yaml") {
		t.Errorf("ConfigError.Error() = %q, should contain path", withPath.Error())
	}
	if !errors.Is(withPath, ErrNoToken) {
		t.Error("ConfigError should unwrap to ErrNoToken")
	}

	noPath := &ConfigError{Field: "token", Err: ErrNoToken}
	if strings.Contains(noPath.Error(), "  ") {
		t.Errorf("ConfigError.Error() = %q has a gap where the path would be", noPath.Error())
	}
}

func TestWorkerError(t *testing.T) {
	err := &WorkerError{Worker: "room-switcher", Err: ErrChannelClosed}

	if !strings.Contains(err.Error(), "room-switcher") {
		t.Errorf("WorkerError.Error() should contain worker name, got: %q", err.Error())
	}
	if !errors.Is(err, ErrChannelClosed) {
		t.Error("WorkerError should unwrap to ErrChannelClosed")
	}

	wrapped := fmt.Errorf("engine: %w", err)
	var workerErr *WorkerError
	if !errors.As(wrapped, &workerErr) {
		t.Fatal("errors.As() should find WorkerError in a wrapped error")
	}
	if workerErr.Worker != "room-switcher" {
		t.Errorf("WorkerError.Worker = %q, want room-switcher", workerErr.Worker)
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "jsonl",
		Path:   "/output/room.jsonl",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "jsonl") {
		t.Errorf("ExportError.Error() should contain format, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}
