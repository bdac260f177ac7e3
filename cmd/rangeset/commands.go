package main

import (
	"fmt"

	"github.com/henderiw/rangeset/internal/cliconfig"
	"github.com/henderiw/rangeset/pkg/box"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/variant"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func toAny(args []string) []any {
	values := make([]any, 0, len(args))
	for _, a := range args {
		values = append(values, a)
	}
	return values
}

func newEvalCmd(cfg *cliconfig.Config, log *zerolog.Logger) *cobra.Command {
	var (
		add    []string
		remove []string
		cidr   bool
	)
	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Print the canonical form and size of a set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rangeset.New(cfg.SetConfig(toAny(args)...))
			if err != nil {
				return err
			}
			for _, a := range add {
				if err := r.Add(a); err != nil {
					return fmt.Errorf("add %q: %w", a, err)
				}
			}
			for _, rm := range remove {
				if err := r.Remove(rm); err != nil {
					return fmt.Errorf("remove %q: %w", rm, err)
				}
			}
			log.Debug().Int("entries", r.Len()).Uint64("size", r.Size()).Msg("evaluated")

			out := cmd.OutOrStdout()
			if cidr {
				return printPrefixes(cmd, r)
			}
			fmt.Fprintln(out, r)
			fmt.Fprintf(out, "size: %d\n", r.Size())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&add, "add", nil, "values added after the set is built (repeatable)")
	cmd.Flags().StringArrayVar(&remove, "remove", nil, "values removed after the additions (repeatable)")
	cmd.Flags().BoolVar(&cidr, "cidr", false, "print ipv4 sets as CIDR prefixes")
	return cmd
}

func printPrefixes(cmd *cobra.Command, r *rangeset.RangeSet) error {
	if r.Variant().Kind() != box.KindIPv4 {
		return fmt.Errorf("%w: --cidr needs an ipv4 set, got %s", rangeset.ErrTypeMismatch, r.Variant().Name())
	}
	for _, rng := range r.Ranges() {
		prefixes, err := variant.Prefixes(rng.Start(), rng.End())
		if err != nil {
			return err
		}
		for _, p := range prefixes {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}
	return nil
}

func newContainsCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "contains SET VALUE...",
		Short: "Report whether every value lies in the set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rangeset.New(cfg.SetConfig(args[0]))
			if err != nil {
				return err
			}
			ok, err := r.Contains(toAny(args[1:])...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return errNotContained
			}
			return nil
		},
	}
}

func newMissingCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "missing SET VALUE...",
		Short: "Print the values that are not in the set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rangeset.New(cfg.SetConfig(args[0]))
			if err != nil {
				return err
			}
			missing, err := r.ContainsAll(toAny(args[1:])...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), missing)
			return nil
		},
	}
}

func newExpandCmd(cfg *cliconfig.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "expand EXPR...",
		Short: "Print every value of the set, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rangeset.New(cfg.SetConfig(toAny(args)...))
			if err != nil {
				return err
			}
			iter := r.By()
			for n := 0; iter.Next(); n++ {
				if limit > 0 && n >= limit {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), iter.Value())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many values (0 prints all)")
	return cmd
}
