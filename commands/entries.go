package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/core/model"
	"github.com/tempora/tempora/internal/util"
)

var (
	entriesLimit int

	updateMessage string
	updateProject string
	updateTask    string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage recorded time entries",
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent entries, newest first",
	RunE:  runEntriesList,
}

var entriesUpdateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Update an entry's description, project or task",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesUpdate,
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesDelete,
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.AddCommand(entriesListCmd, entriesUpdateCmd, entriesDeleteCmd)

	entriesListCmd.Flags().IntVar(&entriesLimit, "limit", 20,
		"Maximum entries to show (0 = unlimited)")

	entriesUpdateCmd.Flags().StringVarP(&updateMessage, "message", "m", "",
		"New description")
	entriesUpdateCmd.Flags().StringVar(&updateProject, "project", "",
		"Move the entry to another project")
	entriesUpdateCmd.Flags().StringVar(&updateTask, "task", "",
		"Attach the entry to a task")
}

func runEntriesList(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries := store.Entries()
	if entriesLimit > 0 && len(entries) > entriesLimit {
		entries = entries[:entriesLimit]
	}
	if len(entries) == 0 {
		fmt.Println("No entries recorded.")
		return nil
	}

	tp := util.GetTimeProvider()
	fmt.Printf("%-14s %-12s %-10s %-9s %s\n", "ID", "Date", "Project", "Duration", "Description")
	for _, entry := range entries {
		duration := util.FormatDuration(entry.Duration())
		if entry.Running {
			duration = "running"
		}
		fmt.Printf("%-14s %-12s %-10s %-9s %s\n",
			entry.ID,
			tp.DateKey(entry.StartTime),
			entry.ProjectID,
			duration,
			util.Truncate(entry.Description, 50))
	}
	return nil
}

func runEntriesUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	patch := model.EntryPatch{}
	if cmd.Flags().Changed("message") {
		patch.Description = &updateMessage
	}
	if cmd.Flags().Changed("project") {
		patch.ProjectID = &updateProject
	}
	if cmd.Flags().Changed("task") {
		patch.TaskID = &updateTask
	}
	if patch.IsZero() {
		return fmt.Errorf("nothing to update; pass -m, --project or --task")
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Update(cmd.Context(), args[0], patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated entry %s\n", entry.ID)
	return nil
}

func runEntriesDelete(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Delete entry %s? This cannot be undone. (y/N): ", args[0])
	var response string
	fmt.Scanln(&response)
	if !strings.EqualFold(response, "y") {
		fmt.Println("Delete cancelled.")
		return nil
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted entry %s\n", args[0])
	return nil
}
