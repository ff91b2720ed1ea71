package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/config"
	"github.com/tempora/tempora/internal/core/timer"
	"github.com/tempora/tempora/internal/presentation/display"
	"github.com/tempora/tempora/internal/util"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	Long: `Shows the active timer and its elapsed time. With --watch the elapsed
display updates every second until interrupted.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false,
		"Keep the display updating every second")
}

func runStatus(cmd *cobra.Command, args []string) error {
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
		if pending := store.PendingEntry(); pending != nil {
			fmt.Printf("No timer running; entry %s awaits a description (tempora stop was interrupted)\n", pending.ID)
			return nil
		}
		fmt.Println("No timer running")
		return nil
	}

	if !statusWatch {
		fmt.Printf("Timer %s on project %s, elapsed %s\n",
			active.ID, active.ProjectID, util.FormatClock(store.Clock().Elapsed()))
		return nil
	}

	return watchTimer(cmd.Context(), store, active.ProjectID, active.Description)
}

func watchTimer(parent context.Context, store *timer.Store, project, description string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	// Config changes (e.g. timezone) are picked up while the view is open.
	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		util.LogWarnf("Config watch unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	view := display.NewStatusView()
	view.RenderTick(project, description, store.Clock().Elapsed())

	for {
		var changes <-chan *config.Config
		if watcher != nil {
			changes = watcher.Changes()
		}

		select {
		case <-ctx.Done():
			view.Done()
			return nil
		case cfg := <-changes:
			if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
				util.LogWarnf("Ignoring timezone change: %v", err)
			}
		case elapsed := <-store.Clock().Ticks():
			view.RenderTick(project, description, elapsed)
		}
	}
}
