package main

import (
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/doctor"
	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Diagnose and repair the instance index",
		GroupID:     GroupUtility,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerant: "true"},
		Long: `Compare the index file with the instance directories on disk.

Checks:
- Index entries whose directory is missing
- Instance directories that are not in the index
- Ids that appear more than once in the index
- An index file that cannot be parsed

With --fix, the index file is rewritten: missing and duplicate entries are
dropped and unindexed directories are added under a placeholder name.
An unparsable index file is kept as instances.index.json.bak and replaced.
Directories are never deleted.`,
		Example: `  bg3mm doctor          # Check for issues
  bg3mm doctor --fix    # Repair the index`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			m, err := managerFrom(ctx)
			if err != nil {
				return err
			}

			out.Println("Checking instances...")
			out.Println()

			report, err := doctor.Check(ctx, m)
			if err != nil {
				return err
			}
			doctor.Print(out.Writer(), report)

			if len(report.Issues) == 0 {
				return nil
			}
			if !fix {
				out.Println("\nRun 'bg3mm doctor --fix' to repair")
				return nil
			}

			out.Println("\nFixing...")
			fixed, err := doctor.Fix(ctx, m, report.Issues, out.Writer())
			if err != nil {
				return err
			}
			l.Debug("doctor fixed issues", "count", fixed)

			if err := m.Refresh(ctx); err != nil {
				return err
			}

			out.Printf("\n✓ Fixed %d issues\n", fixed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the index file")

	return cmd
}
