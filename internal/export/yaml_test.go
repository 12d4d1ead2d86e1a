package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/gitter-session/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	tests := []struct {
		name       string
		transcript *internal.Transcript
	}{
		{
			name:       "room with messages",
			transcript: internal.CreateTestTranscript("gitterHQ/gitter", internal.CreateTestMessages(1, 3)),
		},
		{
			name:       "empty room",
			transcript: internal.CreateTestTranscript("quiet", []internal.Message{}),
		},
		{
			name: "mentions",
			transcript: internal.CreateTestTranscript("gitterHQ/gitter", []internal.Message{
				internal.CreateTestMention("m1", "bob", "alice"),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &YAMLExporter{}

			if err := exporter.Export(tt.transcript, &buf); err != nil {
				t.Fatalf("YAMLExporter.Export() error = %v", err)
			}

			var decoded internal.Transcript
			if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
			}
			if decoded.Room.Name != tt.transcript.Room.Name {
				t.Errorf("Room.Name = %q, want %q", decoded.Room.Name, tt.transcript.Room.Name)
			}
			if len(decoded.Messages) != len(tt.transcript.Messages) {
				t.Errorf("decoded %d messages, want %d", len(decoded.Messages), len(tt.transcript.Messages))
			}
			for i, msg := range decoded.Messages {
				if msg.FromUser.Username != tt.transcript.Messages[i].FromUser.Username {
					t.Errorf("message %d from %q, want %q", i, msg.FromUser.Username, tt.transcript.Messages[i].FromUser.Username)
				}
			}
		})
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
