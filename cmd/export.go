package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/gitter-session/internal"
	"github.com/iksnae/gitter-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [room...]",
	Short: "Export room transcripts to files",
	Long: `Export the most recent messages of rooms to various formats (jsonl, md, yaml, json).

Without arguments every joined room is exported. Each room is written to
<out>/<room name>.<ext>. Use --out - to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		cfg, client, dir, err := connect(cmd)
		if err != nil {
			return err
		}

		rooms := dir.Catalog.Rooms()
		if len(args) > 0 {
			rooms = rooms[:0]
			for _, arg := range args {
				room, err := dir.Catalog.Find(arg)
				if err != nil {
					return err
				}
				rooms = append(rooms, room)
			}
		}

		toStdout := outputDir == "-"
		if !toStdout {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		ctx := cmd.Context()
		exported := 0
		for _, room := range rooms {
			messages := internal.SortMessages(client.FetchMessages(ctx, cfg.Token, room.ID, cfg.FetchLimit))
			transcript := internal.NewTranscript(room, messages)

			if toStdout {
				if err := exporter.Export(transcript, cmd.OutOrStdout()); err != nil {
					return &internal.ExportError{Format: format, Path: "-", Err: err}
				}
				exported++
				continue
			}

			path := filepath.Join(outputDir, export.FileName(room, exporter.Extension()))
			if err := writeTranscript(exporter, transcript, path); err != nil {
				return &internal.ExportError{Format: format, Path: path, Err: err}
			}
			internal.LogInfo("Exported %d message(s) from %s to %s", len(messages), room.Name, path)
			exported++
		}

		if !toStdout {
			internal.PrintSuccess(fmt.Sprintf("Exported %d room(s) to %s", exported, outputDir))
		}
		return nil
	},
}

func writeTranscript(exporter export.Exporter, transcript *internal.Transcript, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := exporter.Export(transcript, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory, or - for stdout")
}
