package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/util"
)

var (
	stopMessage string
	stopTask    string
	stopSkip    bool
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer",
	Long: `Stops the active timer. The entry is closed on the server immediately;
the description can be filed in the same step with -m, skipped with --skip,
or entered at the interactive prompt.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
	stopCmd.Flags().StringVarP(&stopMessage, "message", "m", "",
		"Description for the stopped entry")
	stopCmd.Flags().StringVar(&stopTask, "task", "",
		"Task to attach the entry to")
	stopCmd.Flags().BoolVar(&stopSkip, "skip", false,
		"Leave the entry without a description")
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	active := store.ActiveEntry()
	if active == nil {
		return fmt.Errorf("no timer is running")
	}

	closed, err := store.Stop(cmd.Context(), active.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Stopped timer %s after %s\n", closed.ID, util.FormatDuration(closed.Duration()))

	description := stopMessage
	if description == "" && !stopSkip {
		description = promptDescription()
	}

	if description == "" {
		store.ClearPending()
		return nil
	}

	if _, err := store.CompletePending(cmd.Context(), description, stopTask); err != nil {
		return err
	}
	fmt.Println("Description saved.")
	return nil
}

func promptDescription() string {
	fmt.Print("Description (leave empty to skip): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
