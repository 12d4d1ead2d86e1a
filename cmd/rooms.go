package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var roomsJSON bool

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List joined rooms",
	Long: `List the rooms you have joined, in the order the chat window cycles
through them: group rooms by name, then one-to-one conversations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, dir, err := connect(cmd)
		if err != nil {
			return err
		}

		rooms := dir.Catalog.Rooms()
		out := cmd.OutOrStdout()

		if roomsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rooms)
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			Headers("ROOM", "TYPE", "MENTIONS", "ID").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if row < 0 || row >= len(rooms) {
					return cellStyle
				}
				switch {
				case col == 1 && rooms[row].OneToOne:
					return idStyle
				case col == 2 && rooms[row].Mentions > 0:
					return countStyle
				case col == 3:
					return idStyle
				}
				return cellStyle
			})

		for _, room := range rooms {
			kind := "room"
			if room.OneToOne {
				kind = "one-to-one"
			}
			t.Row(room.Name, kind, strconv.Itoa(room.Mentions), room.ID)
		}

		fmt.Fprintln(out, t.Render())
		fmt.Fprintf(out, "%d room(s) for @%s\n", len(rooms), dir.User.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roomsCmd)
	roomsCmd.Flags().BoolVar(&roomsJSON, "json", false, "Print rooms as JSON")
}
