package main

import (
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/output"
)

// InstanceDisplay holds instance info for display
type InstanceDisplay struct {
	instance.Info
	Path  string `json:"path"`
	Image string `json:"image,omitempty"`
}

func newShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "show <id-or-name>",
		Short:             "Show one instance",
		Aliases:           []string{"info"},
		GroupID:           GroupInstance,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInstanceNames,
		Long: `Show one instance.

The entry is looked up in the index file on disk, not the cached index, so
changes made by other processes are visible.`,
		Example: `  bg3mm show "Honour run"
  bg3mm show 6f1c9a52 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			id, err := resolveInstance(m, args[0])
			if err != nil {
				return err
			}

			info, err := m.Get(ctx, id)
			if err != nil {
				return err
			}

			store := m.Store()
			display := InstanceDisplay{Info: info, Path: store.Dir(id)}
			if image, ok := store.ImagePath(id); ok {
				display.Image = image
			}

			if jsonOutput {
				return out.JSON(display)
			}

			out.Printf("ID:    %s\n", display.ID)
			out.Printf("Name:  %s\n", display.Name)
			out.Printf("Order: %d\n", display.OrderIndex)
			out.Printf("Path:  %s\n", display.Path)
			if display.Image != "" {
				out.Printf("Image: %s\n", display.Image)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
