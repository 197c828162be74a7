package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/appstate"
	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupInstance = "instance"
	GroupUtility  = "utility"
	GroupConfig   = "config"
)

// annotationNoState marks commands that run without bootstrapping the
// config and instance index.
const annotationNoState = "bg3mm/no-state"

// annotationTolerant marks commands, and their subcommands, that still run
// when the index file cannot be parsed.
const annotationTolerant = "bg3mm/tolerant-index"

// newRootCmd builds the command tree. Diagnostics go to stderr.
func newRootCmd(stderr io.Writer) *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	rootCmd := &cobra.Command{
		Use:   "bg3mm",
		Short: "Manage Baldur's Gate 3 mod manager instances",
		Long: `bg3mm manages a catalog of instances: isolated working directories for
mod setups. Every instance is a directory named by its id under the
instances directory, tracked in instances.index.json.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithLogger(cmd.Context(), log.New(stderr, verbose, quiet))
			if needsState(cmd) {
				st, err := loadState(ctx, toleratesBadIndex(cmd))
				if err != nil {
					return err
				}
				if st.IndexErr != nil {
					log.FromContext(ctx).Printf("Warning: %v\n(starting with an empty index; run 'bg3mm doctor --fix' to repair)\n", st.IndexErr)
				}
				ctx = appstate.WithState(ctx, st)
			}
			cmd.SetContext(ctx)
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show file operations and debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupInstance, Title: "Instance Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Instance commands
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newListCmd())

	// Utility commands
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newDoctorCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// needsState reports whether cmd operates on instances and therefore needs
// the bootstrapped state. Completion and help commands never do.
func needsState(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationNoState] != "" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "completion", "__complete", "help":
			return false
		}
	}
	return true
}

// toleratesBadIndex reports whether cmd can run on an empty cache when the
// index file is unreadable.
func toleratesBadIndex(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationTolerant] != "" {
			return true
		}
	}
	return false
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Primary data goes to stdout, downsampled when piped
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'bg3mm -h' for help")
		os.Exit(1)
	}
}
