package cli

import (
	"fmt"
	"os"

	"github.com/a1mart/tasker/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDocument is the YAML shape written by the export command.
type exportDocument struct {
	Tasks     []models.Task         `yaml:"tasks"`
	Users     []models.User         `yaml:"users"`
	Analytics *models.TaskAnalytics `yaml:"analytics,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the synchronized tasks, users, and analytics as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := App.Syncer.SyncAll(cmd.Context()); err != nil {
			return err
		}

		snap := App.Store.Snapshot()
		doc := exportDocument{
			Tasks:     snap.Tasks,
			Users:     snap.Users,
			Analytics: snap.Analytics,
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
