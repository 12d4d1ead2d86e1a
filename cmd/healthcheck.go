package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/gitter-session/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration and access to the chat API",
	Long: `Check the health of gitter-session by verifying:
  • Configuration and token discovery
  • Access to the user resource
  • Access to the room list
  • Access to the messages of the first room

This command is useful for debugging tokens and proxies.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		fmt.Fprintln(out, sectionStyle.Render("Gitter Session Health Check"))
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Configuration invalid:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			source := cfg.Path
			if source == "" {
				source = "environment"
			}
			fmt.Fprintf(out, "   Source: %s\n", source)
			fmt.Fprintf(out, "   API: %s\n", cfg.APIURL)
			fmt.Fprintf(out, "   Poll interval: %s, fetch limit: %d\n", cfg.PollInterval, cfg.FetchLimit)
		}
		fmt.Fprintln(out)

		client := newClient(cfg)

		fmt.Fprintln(out, infoStyle.Render("Step 2: Fetching the local user..."))
		users := client.FetchUser(ctx, cfg.Token)
		if len(users) == 0 {
			fmt.Fprintln(out, errorStyle.Render("❌ Could not load the user; check the token"))
			return fmt.Errorf("health check failed: %w", internal.ErrNoUser)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Signed in as @"+users[0].Username))
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Step 3: Fetching rooms..."))
		catalog := internal.NewRoomCatalog(client.FetchRooms(ctx, cfg.Token))
		first, err := catalog.First()
		if err != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No rooms joined"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, warningStyle.Render("⚠️  API reachable but there is nothing to watch"))
			return nil
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d room(s)", catalog.Len())))
		if healthcheckVerbose {
			for i, room := range catalog.Rooms() {
				if i == 5 {
					fmt.Fprintf(out, "   ... and %d more\n", catalog.Len()-5)
					break
				}
				fmt.Fprintf(out, "   [%d] %s (ID: %s)\n", i+1, room.Name, room.ID)
			}
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Step 4: Fetching messages of "+first.Name+"..."))
		messages := client.FetchMessages(ctx, cfg.Token, first.ID, cfg.FetchLimit)
		if len(messages) == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No messages returned (empty room or fetch failed, see log)"))
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Fetched %d message(s)", len(messages))))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, sectionStyle.Render("Summary"))
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
}
