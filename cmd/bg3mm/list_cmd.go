package main

import (
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
	"github.com/lilydev/bg3mm/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List instances",
		Aliases: []string{"ls"},
		GroupID: GroupInstance,
		Args:    cobra.NoArgs,
		Long: `List instances in index order.

The list comes from the cached index, which is loaded when bg3mm starts.
Use --refresh to reload it from the index file first.`,
		Example: `  bg3mm list             # Table of instances
  bg3mm list --json      # Output the index as JSON
  bg3mm list --refresh   # Re-read the index file first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			if refresh {
				if err := m.Refresh(ctx); err != nil {
					return err
				}
			}

			idx := m.Index()
			l.Debug("listing instances", "count", len(idx.Instances))

			if jsonOutput {
				return out.JSON(idx)
			}

			if len(idx.Instances) == 0 {
				out.Println("No instances found")
				return nil
			}

			out.Print(static.InstanceTable(idx))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&refresh, "refresh", "R", false, "Reload the index file before listing")

	return cmd
}
