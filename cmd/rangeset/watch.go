package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/henderiw/rangeset/internal/cliconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newWatchCmd(cfg *cliconfig.Config, log *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Print a set file and reprint it whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watch(ctx, args[0], *cfg, cmd.OutOrStdout(), *log)
		},
	}
}

// watch evaluates the set file at path and again on every write until ctx
// is done. Evaluation errors are logged and do not stop the watch.
func watch(ctx context.Context, path string, cfg cliconfig.Config, out io.Writer, log zerolog.Logger) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// the directory is watched so files replaced by editors are still seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	evaluate := func() {
		sf, err := cliconfig.LoadSetFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("load set file")
			return
		}
		r, err := sf.Build(cfg)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("evaluate set file")
			return
		}
		log.Info().Str("file", path).Uint64("size", r.Size()).Msg("evaluated")
		fmt.Fprintln(out, r)
	}
	evaluate()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			evaluate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher")
		}
	}
}
