package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/gitter-session/internal"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <room> <text...>",
	Short: "Post a message to a room",
	Long: `Post a message to a room. The remaining arguments are joined with spaces.
Blank messages are not sent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		if strings.TrimSpace(text) == "" {
			internal.PrintWarning("Nothing to send")
			return nil
		}

		cfg, client, dir, err := connect(cmd)
		if err != nil {
			return err
		}

		room, err := dir.Catalog.Find(args[0])
		if err != nil {
			return err
		}

		if err := client.PostMessage(cmd.Context(), cfg.Token, room.ID, text); err != nil {
			return fmt.Errorf("failed to send to %s: %w", room.Name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sent to %s\n", room.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
