package cli

import (
	"fmt"

	"github.com/a1mart/tasker/internal/core"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by free text",
	Long: `Search tasks by case-insensitive substring over title and description.
The query goes through the same debounced search path the board uses; an
empty query resets the view to the full task listing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if App.Monitor.Check(cmd.Context()) != core.StateConnected {
			return fmt.Errorf("%s", App.Store.Snapshot().ConnectionErr)
		}

		App.Debouncer.QueryChanged(args[0])
		App.Debouncer.Flush()

		snap := App.Store.Snapshot()
		if len(snap.Displayed) == 0 {
			fmt.Println("No tasks matched.")
			return nil
		}
		printTaskTable(snap.Displayed, snap.Users)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
