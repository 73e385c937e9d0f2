package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchDebounce collapses the burst of events a single save produces.
var watchDebounce = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var f scenarioFlags
	cmd := &cobra.Command{
		Use:   "watch <scenario>",
		Short: "Rerun a scenario every time the file is written",
		Long: "Run the scenario once, then again after every write to it, each time\n" +
			"on a fresh inventory loaded from --input. Stops on interrupt.",
		Args: exactArgs(1),
		RunE: a.loggedRunE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			w, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			// Watch the directory so editors that replace the file by rename
			// are still seen.
			dir := filepath.Dir(target)
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			out := cmd.OutOrStdout()
			rerun := func() {
				sum, err := a.runScenario(target, f, logger)
				if err != nil {
					fmt.Fprintf(out, "%s\nerror: %v\n", sum, err)
					return
				}
				fmt.Fprintln(out, sum)
			}

			if _, err := os.Stat(target); err == nil {
				rerun()
			}
			fmt.Fprintf(out, "watching %s\n", target)
			logger.Info("watching scenario", zap.String("path", target))
			return watchLoop(cmd.Context(), w.Events, w.Errors, target, rerun, logger)
		}),
	}
	f.register(cmd)
	return cmd
}

// watchLoop calls fn once per debounced burst of writes to target. It
// returns nil when ctx is done or the watcher closes its channels.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, fn func(), logger *zap.Logger) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("scenario changed", zap.String("op", ev.Op.String()))
			timer.Reset(watchDebounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			fn()
		}
	}
}
