package main

import (
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/output"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		Short:   "Reload the instance index from disk",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Reload the cached instance index from the index file.

If the file cannot be read or parsed the error is reported and the cached
index keeps its previous contents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			if err := m.Refresh(ctx); err != nil {
				return err
			}

			out.Printf("Index refreshed (%d instances)\n", len(m.Index().Instances))
			return nil
		},
	}
}
