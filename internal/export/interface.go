package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/gitter-session/internal"
)

// Exporter writes a room transcript in one format
type Exporter interface {
	Export(transcript *internal.Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// FileName returns a file name for a room transcript, e.g. "gitterHQ_gitter.jsonl"
func FileName(room internal.Room, ext string) string {
	name := strings.Trim(room.Name, "/ ")
	if name == "" {
		name = room.ID
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + "." + ext
}
