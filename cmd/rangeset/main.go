package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/henderiw/rangeset/internal/cliconfig"
	"github.com/henderiw/rangeset/pkg/variant"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

var longHelp = strings.TrimSpace(`
Evaluate, query and expand range expressions such as "-5..5,10..15",
"0-9", "*010-*100" or "10.0.0.1-10.0.0.9".

Configuration is read from $HOME/.rangeset/config.toml (or --config), then
from RANGESET_* environment variables; flags given on the command line win.
`)

var exampleUsage = strings.TrimSpace(`
  rangeset eval "1..5, 3..8, 10" --remove 4
  rangeset --type serial contains "0-9" 5
  rangeset --type ipv4 eval "10.0.0.0-10.0.1.3" --cidr
  rangeset watch ./vlans.toml
`)

// errNotContained makes the process exit non-zero without logging.
var errNotContained = errors.New("not contained")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := cliconfig.Logger()

	root := newRootCmd(&log)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errNotContained) {
			log.Error().Err(err).Msg("rangeset")
		}
		os.Exit(1)
	}
}

func newRootCmd(log *zerolog.Logger) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "rangeset",
		Short:         "Canonical sets of integer, serial, digit string and IPv4 ranges",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// RANGESET_* override the file, flags override both
			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}
			*log = cliconfig.SetLevel(*log, cfg.LogLevel)
			log.Debug().Interface("config", cfg).Msg("configuration")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rangeset/config.toml)")
	root.PersistentFlags().StringVarP(&cfg.Type, "type", "t", cfg.Type, fmt.Sprintf("range type, one of %s", strings.Join(variant.Names(), ", ")))
	root.PersistentFlags().StringVarP(&cfg.Separator, "separator", "s", cfg.Separator, "separator between entries in the output")
	root.PersistentFlags().StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "regexp replacing the validation pattern of the type")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newEvalCmd(&cfg, log),
		newContainsCmd(&cfg),
		newMissingCmd(&cfg),
		newExpandCmd(&cfg),
		newWatchCmd(&cfg, log),
	)
	return root
}
