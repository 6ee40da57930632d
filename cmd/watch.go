package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/justify/internal/telemetry"
	"github.com/papapumpkin/justify/internal/textio"
	"github.com/papapumpkin/justify/internal/ui"
	"github.com/papapumpkin/justify/internal/watch"
)

var (
	errWatchStdin = errors.New("cannot watch stdin")
	errSameFile   = errors.New("output must differ from the watched input")
)

var watchCmd = &cobra.Command{
	Use:   "watch [input]",
	Short: "Justify the input, then again every time it changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Bool("preview", false, "print a framed preview of the block after each run")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	defer p.close()

	if err := checkWatchable(p.cfg.Input, p.cfg.Output); err != nil {
		return err
	}

	w, err := watch.New(p.cfg.Input, time.Duration(p.cfg.DebounceMS)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", p.cfg.Input, err)
	}
	defer w.Stop()

	if _, err := p.run(1); err != nil {
		p.printer.Error(err.Error())
	}
	p.printer.Watching(p.cfg.Input)

	ctx, cancel := setupSignalContext(p.printer)
	defer cancel()
	return watchLoop(ctx, p, w.Changes)
}

// checkWatchable rejects inputs that cannot be watched.
func checkWatchable(input, output string) error {
	if input == textio.Stdio {
		return errWatchStdin
	}
	if output == textio.Stdio {
		return nil
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("%w: %s", errSameFile, input)
	}
	return nil
}

// watchLoop re-runs the pipeline for every change until ctx is canceled or
// changes is closed. Run failures are reported and do not stop the loop.
func watchLoop(ctx context.Context, p *pipeline, changes <-chan watch.Change) error {
	runNum := 1
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			p.emit(telemetry.KindInputChanged, runNum, map[string]bool{"removed": change.Removed})
			if change.Removed {
				p.printer.Removed(p.cfg.Input)
				continue
			}
			runNum++
			p.printer.Rerun(runNum, p.cfg.Input)
			if _, err := p.run(runNum); err != nil {
				p.printer.Error(err.Error())
			}
		}
	}
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nstopping watch...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
