package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/util"
)

var startMessage string

var startCmd = &cobra.Command{
	Use:   "start <project-id>",
	Short: "Start a timer on a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVarP(&startMessage, "message", "m", "",
		"Description for the new entry")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Start(cmd.Context(), args[0], startMessage)
	if err != nil {
		return err
	}

	tp := util.GetTimeProvider()
	fmt.Printf("Started timer %s on project %s at %s\n",
		entry.ID, entry.ProjectID, tp.Format(entry.StartTime, "15:04:05"))
	return nil
}
