package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
)

func newPathCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:               "path <id-or-name>",
		Short:             "Print an instance directory",
		Aliases:           []string{"dir"},
		GroupID:           GroupUtility,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInstanceNames,
		Long: `Print the directory of an instance.

Only the path is printed to stdout, so the output can be used directly.`,
		Example: `  cd "$(bg3mm path 'Honour run')"   # Jump into an instance
  bg3mm path Tactician --copy        # Copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			id, err := resolveInstance(m, args[0])
			if err != nil {
				return err
			}

			dir := m.Store().Dir(id)
			if ok, err := dirExists(ctx, dir); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("instance directory missing: %s (run 'bg3mm doctor')", dir)
			}

			out.Println(dir)

			if copyToClipboard {
				if err := clipboard.WriteAll(dir); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	return cmd
}
