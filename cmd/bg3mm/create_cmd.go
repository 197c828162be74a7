package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
	"github.com/lilydev/bg3mm/internal/ui/prompt"
)

func newCreateCmd() *cobra.Command {
	var (
		image      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "create [name]",
		Short:   "Create a new instance",
		Aliases: []string{"new"},
		GroupID: GroupInstance,
		Args:    cobra.MaximumNArgs(1),
		Long: `Create a new instance with a fresh id.

The instance directory is created first, then the index file is re-read and
written back with the new entry. With --image the file is copied into the
instance directory as instance.<ext>.

Without a name, bg3mm asks for one when run in a terminal.

Names do not have to be unique; refer to instances by id when they clash.`,
		Example: `  bg3mm create "Honour run"                      # Create an instance
  bg3mm create Tactician --image ~/Pictures/t.png  # With a cover image
  bg3mm create                                   # Prompt for a name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case isInteractive():
				result, err := prompt.TextInput("Instance name", "Honour run")
				if err != nil {
					return err
				}
				if result.Cancelled {
					l.Println("Cancelled")
					return nil
				}
				name = result.Value
			default:
				return fmt.Errorf("instance name required (not running in a terminal)")
			}

			info, err := m.Create(ctx, name, image)
			if err != nil && info.ID == uuid.Nil {
				return fmt.Errorf("create instance: %w", err)
			}

			if jsonOutput {
				if jerr := out.JSON(info); jerr != nil {
					return jerr
				}
			} else {
				out.Printf("Created %s (%s)\n", info.Name, info.ID)
			}

			// The instance exists even when only the image copy failed.
			if err != nil {
				return fmt.Errorf("attach image: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "Cover image to copy into the instance")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the new instance as JSON")

	return cmd
}
