package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/geocap/internal/capability"
	"github.com/mesh-intelligence/geocap/internal/numeric"
	"github.com/mesh-intelligence/geocap/internal/sqlite"
)

// storeFunc runs against an open series store.
type storeFunc func(*sqlite.Store) error

// withStore runs fn against the series store. The store needs the tabular
// capability; without it the call is skipped and reported under op.
func (a *app) withStore(op string, fn storeFunc) error {
	run := capability.Requires[func(storeFunc) error](a.registry,
		[]string{numeric.CapTabular}, a.requireOptions(op)...)(a.openStore)
	return run(fn)
}

func (a *app) openStore(fn storeFunc) (err error) {
	store, err := a.env.Tabular(a.config.DataDir)
	if err != nil {
		return fmt.Errorf("open series store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(store)
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("list", func(s *sqlite.Store) error {
				names, err := s.Names()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					if names == nil {
						names = []string{}
					}
					return printJSON(cmd.OutOrStdout(), names)
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <name> <file.jsonl>",
		Short: "Export a stored series as JSONL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("dump", func(s *sqlite.Store) error {
				return s.ExportJSONL(args[0], args[1])
			})
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <name> <file.jsonl>",
		Short: "Load a JSONL export into the series store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("restore", func(s *sqlite.Store) error {
				return s.ImportJSONL(args[0], args[1])
			})
		},
	}
}
