package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/gitter-session/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export writes one object per message, oldest first
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		obj := map[string]interface{}{
			"id":   msg.ID,
			"from": msg.FromUser.Username,
			"text": msg.Text,
		}

		if msg.Sent != "" {
			obj["sent"] = msg.Sent
		}
		if len(msg.Mentions) > 0 {
			mentions := make([]string, len(msg.Mentions))
			for i, m := range msg.Mentions {
				mentions[i] = m.ScreenName
			}
			obj["mentions"] = mentions
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
