package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/gitter-session/internal"
	"github.com/spf13/cobra"
)

var (
	showLimit int
	showSince string
)

var showCmd = &cobra.Command{
	Use:   "show <room>",
	Short: "Print the most recent messages of a room",
	Long: `Print the most recent messages of a room, oldest first.

The room may be given by name (gitterHQ/gitter), url (/gitterHQ/gitter) or id.
Use 'gitter-session rooms' to see the rooms you have joined.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var since time.Time
		if showSince != "" {
			t, err := time.Parse(time.RFC3339, showSince)
			if err != nil {
				return fmt.Errorf("invalid --since %q (want RFC3339, e.g. 2024-01-02T15:04:05Z): %w", showSince, err)
			}
			since = t
		}

		cfg, client, dir, err := connect(cmd)
		if err != nil {
			return err
		}

		room, err := dir.Catalog.Find(args[0])
		if err != nil {
			return err
		}

		limit := showLimit
		if limit <= 0 {
			limit = cfg.FetchLimit
		}

		ledger := internal.NewMessageLedger()
		messages := ledger.Reconcile(client.FetchMessages(cmd.Context(), cfg.Token, room.ID, limit))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, internal.FormatRoom(room, true))

		shown := 0
		for _, msg := range messages {
			if !since.IsZero() {
				if sent, ok := msg.SentAt(); ok && sent.Before(since) {
					continue
				}
			}
			fmt.Fprintln(out, internal.FormatMessage(msg, dir.User))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No messages")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Number of recent messages to fetch (default from config)")
	showCmd.Flags().StringVar(&showSince, "since", "", "Only show messages sent at or after this time (RFC3339)")
}
