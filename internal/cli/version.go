package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/geocap/pkg/geocap"
)

const modulePath = "github.com/mesh-intelligence/geocap"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the geocap version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "geocap v%s\nmodule: %s\n", geocap.Version, modulePath)
			return nil
		},
	}
}
