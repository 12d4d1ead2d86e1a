package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/gitter-session/internal"
)

// JSONExporter exports transcripts in JSON format (pretty-printed)
type JSONExporter struct{}

// Export encodes the whole transcript as one JSON document
func (e *JSONExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(transcript)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
