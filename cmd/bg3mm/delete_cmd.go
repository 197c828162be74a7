package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
	"github.com/lilydev/bg3mm/internal/ui/prompt"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete [id-or-name]",
		Short:             "Delete an instance and its directory",
		Aliases:           []string{"rm"},
		GroupID:           GroupInstance,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeInstanceNames,
		Long: `Delete an instance.

The instance directory is removed from disk first. Only then is every entry
with the instance's id dropped from the index file. If the directory cannot be
removed the index is left alone.

Without an argument, bg3mm offers a list to pick from when run in a terminal.
Deleting asks for confirmation unless --force is given; outside a terminal
--force is required.`,
		Example: `  bg3mm delete "Honour run"   # Delete by name
  bg3mm delete 6f1c9a52        # Delete by id prefix
  bg3mm rm Tactician -f        # Delete without confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			var id uuid.UUID
			if len(args) == 1 {
				id, err = resolveInstance(m, args[0])
				if err != nil {
					return err
				}
			} else {
				if !isInteractive() {
					return fmt.Errorf("instance required (not running in a terminal)")
				}
				var ok bool
				id, ok, err = selectInstance(m.Index())
				if err != nil || !ok {
					return err
				}
			}

			label := describe(m, id)
			l.Debug("deleting instance", "id", id, "dir", m.Store().Dir(id))

			if !force {
				if !isInteractive() {
					return fmt.Errorf("refusing to delete %s without --force (not running in a terminal)", label)
				}
				result, err := prompt.Confirm(fmt.Sprintf("Delete %s and its directory?", label))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			if err := m.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete instance: %w", err)
			}

			out.Printf("Deleted %s\n", label)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")

	return cmd
}

// selectInstance lets the user pick an instance from idx.
// ok is false when the prompt was cancelled.
func selectInstance(idx instance.Index) (id uuid.UUID, ok bool, err error) {
	if len(idx.Instances) == 0 {
		return uuid.Nil, false, errNoInstances
	}

	result, err := prompt.Select("Select instance", idx.Instances)
	if err != nil || result.Cancelled {
		return uuid.Nil, false, err
	}
	return result.ID, true, nil
}
