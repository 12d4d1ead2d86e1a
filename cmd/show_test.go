package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/gitter-session/internal"
)

func TestShowCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     []string
		notWant  []string
		wantErr  error
		anyError bool
	}{
		{
			name: "by name",
			args: []string{"show", "gitterHQ/gitter"},
			want: []string{"gitterHQ/gitter", "message 1", "message 2", "message 3"},
		},
		{
			name: "by id",
			args: []string{"show", "r1"},
			want: []string{"message 3"},
		},
		{
			name: "empty room",
			args: []string{"show", "zoo/lounge"},
			want: []string{"No messages"},
		},
		{
			name:    "since filters older messages",
			args:    []string{"show", "r1", "--since", "2024-01-01T12:00:02Z"},
			want:    []string{"message 2", "message 3"},
			notWant: []string{"message 1"},
		},
		{
			name:    "unknown room",
			args:    []string{"show", "nowhere"},
			wantErr: internal.ErrRoomNotFound,
		},
		{
			name:     "invalid since",
			args:     []string{"show", "r1", "--since", "yesterday"},
			anyError: true,
		},
		{
			name:     "missing room argument",
			args:     []string{"show"},
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTestAPI(t)

			out, err := executeCommand(t, tt.args...)
			if tt.wantErr != nil || tt.anyError {
				if err == nil {
					t.Fatal("show error = nil, want error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("show error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("show error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("show output should contain %q:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("show output should not contain %q:\n%s", notWant, out)
				}
			}
		})
	}
}

func TestShowCommand_Limit(t *testing.T) {
	api := newTestAPI(t)

	if _, err := executeCommand(t, "show", "r1", "--limit", "5"); err != nil {
		t.Fatalf("show --limit error = %v", err)
	}

	for _, req := range api.Requests() {
		if req.Path == "/v1/rooms/r1/chatMessages" && req.RawQuery != "limit=5" {
			t.Errorf("RawQuery = %q, want limit=5", req.RawQuery)
		}
	}
}
