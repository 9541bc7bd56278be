package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// Session logs are appended in bursts; coalesce events before re-extracting.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously extract sessions as they change",
	Long: `Watch the raw session directory and re-run extraction whenever a
session log changes. The incremental freshness check keeps each pass cheap:
unchanged sessions are detected from their output headers alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDir, outDir, err := resolveDirs()
		if err != nil {
			return err
		}

		extractor, err := internal.NewExtractor()
		if err != nil {
			return fmt.Errorf("failed to resolve machine id: %w", err)
		}

		index, err := openIndex()
		if err != nil {
			internal.LogWarn("continuing without session index: %v", err)
			index = nil
		} else {
			defer index.Close()
		}

		runPass := func() {
			result, err := extractor.ExtractAll(rawDir, outDir, index)
			if err != nil {
				internal.PrintError(err.Error())
				return
			}
			if result.Extracted > 0 || result.Skipped > 0 || result.Failed > 0 {
				internal.PrintSuccess(result.String())
			}
		}

		// Initial pass before watching so a fresh checkout catches up.
		runPass()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(rawDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", rawDir, err)
		}
		internal.PrintInfo(fmt.Sprintf("Watching %s", rawDir))

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

		var timer *time.Timer
		pending := make(chan struct{}, 1)
		schedule := func() {
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					internal.LogDebug("change detected: %s", event.Name)
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				internal.LogWarn("watch error: %v", err)
			case <-pending:
				runPass()
			case <-interrupt:
				internal.PrintInfo("Stopping watch")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
