package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/geocap/pkg/types"
)

type capRow struct {
	types.Capability
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func newCapsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "List registered capabilities and whether they resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []capRow
			for _, name := range a.registry.Names() {
				c, _ := a.registry.Lookup(name)
				rows = append(rows, a.capRow(c))
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Name, strconv.FormatBool(r.Available), strconv.FormatBool(r.Mandatory), r.Description})
			}
			return printTable(cmd.OutOrStdout(), []string{"NAME", "AVAILABLE", "MANDATORY", "DESCRIPTION"}, table)
		},
	}
}

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <name>",
		Short: "Probe a single capability by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := a.registry.Lookup(args[0])
			if !ok {
				c = types.Capability{Name: args[0]}
			}
			row := a.capRow(c)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), row)
			}
			if row.Available {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: available\n", row.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unavailable (%s)\n", row.Name, row.Reason)
			}
			return nil
		},
	}
}

func (a *app) capRow(c types.Capability) capRow {
	row := capRow{Capability: c, Available: true}
	if _, err := a.registry.Resolve(c.Name); err != nil {
		row.Available = false
		row.Reason = reason(err)
	}
	return row
}

// reason strips the common unavailable prefix from a resolve error.
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), types.ErrCapabilityUnavailable.Error()+": ")
}
