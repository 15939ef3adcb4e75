package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPlansCommand creates the plans subcommand, which lists the plan names
// a run would accept, including any defined by --config.
func NewPlansCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available test plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
