package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/gitter-session/internal"
	"github.com/iksnae/gitter-session/internal/tui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [room]",
	Short: "Open the chat window",
	Long: `Open the chat window on a room (the first joined room by default).

Type to post to the active room. Commands:
  /join <room>   switch to a room by name, url or id
  /rooms         list joined rooms
  /quit          leave

ctrl+n / ctrl+p cycle through rooms, ctrl+c quits. Logs are discarded while
the window is open unless --log-file is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)

		var dir *internal.Directory
		var start internal.Room
		err = internal.ShowProgressWithSteps(ctx, []internal.ProgressStep{
			{
				Message: "Connecting to " + cfg.APIURL,
				Fn: func() error {
					var err error
					dir, err = internal.Bootstrap(ctx, client, cfg.Token)
					return err
				},
			},
			{
				Message: "Opening room",
				Fn: func() error {
					var err error
					if len(args) == 1 {
						start, err = dir.Catalog.Find(args[0])
					} else {
						start, err = dir.Catalog.First()
					}
					return err
				},
			},
		})
		if err != nil {
			return err
		}

		return runChat(ctx, cmd, cfg, client, dir, start)
	},
}

func runChat(ctx context.Context, cmd *cobra.Command, cfg *internal.Config, client *internal.Client, dir *internal.Directory, start internal.Room) error {
	restore, err := redirectLogs(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restore()

	session := internal.NewChatSession(client, cfg.Token, start.ID, cfg.FetchLimit)
	engine := internal.NewEngine(session, internal.EngineOptions{PollInterval: cfg.PollInterval})

	engineCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- engine.Run(engineCtx) }()

	notifications := internal.NewQueue[internal.Notification]()
	go func() { _ = notifications.Run(engineCtx) }()

	model := tui.New(tui.Options{
		Presenter:     internal.NewPresenter(dir.User, engine.Snapshots(), notifications),
		Catalog:       dir.Catalog,
		RoomRequests:  engine.RoomRequests(),
		Outgoing:      engine.Outgoing(),
		Notifications: notifications.Out(),
		TickInterval:  cfg.TickInterval,
		ActiveRoom:    start.ID,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, runErr := program.Run()

	// Queued text is still posted before the engine stops
	engine.Close()
	engineErr := <-errCh

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("chat window failed: %w", runErr)
	}
	if engineErr != nil && !errors.Is(engineErr, internal.ErrChannelClosed) {
		return fmt.Errorf("sync engine failed: %w", engineErr)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
