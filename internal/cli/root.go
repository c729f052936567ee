// Package cli implements the cobra command surface of the tasker client.
// Commands are thin: every data concern goes through the orchestration core
// so the same gating, reconciliation, and error policies apply everywhere.
package cli

import (
	"fmt"

	app "github.com/a1mart/tasker/internal"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// App holds the wired services; set by Execute before any command runs.
var App *app.App

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "tasker",
	Short: "tasker - task tracking client",
	Long: `tasker is a client for a remote task and user service. It keeps a local
view of tasks, users, and analytics in sync with the service, filters and
searches that view, and applies every write through a write-then-reconcile
pipeline so the displayed state always reflects server truth.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tasker %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute wires the App into the command tree and runs the root command.
func Execute(a *app.App) error {
	App = a
	return rootCmd.Execute()
}
