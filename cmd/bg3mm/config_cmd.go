package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/appstate"
	"github.com/lilydev/bg3mm/internal/config"
	"github.com/lilydev/bg3mm/internal/log"
	"github.com/lilydev/bg3mm/internal/output"
	"github.com/lilydev/bg3mm/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Aliases:     []string{"cfg"},
		GroupID:     GroupConfig,
		Annotations: map[string]string{annotationTolerant: "true"},
		Long: `Manage bg3mm configuration.

Config file: <user config dir>/bg3mm/config.toml, or $BG3MM_CONFIG.
$BG3MM_INSTANCES_DIR overrides instances_dir for a single run.`,
		Example: `  bg3mm config init                        # Create default config
  bg3mm config show                        # Show effective config
  bg3mm config set-instances-dir ~/bg3mm   # Move the instance catalog
  bg3mm config set-game-dir ~/Games/BG3    # Record the game directory`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetInstancesDirCmd())
	cmd.AddCommand(newConfigSetGameDirCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoState: "true"},
		Example: `  bg3mm config init      # Create config
  bg3mm config init -f   # Overwrite existing config
  bg3mm config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, afero.NewOsFs(), force, stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func initConfig(cmd *cobra.Command, fs afero.Fs, force, stdout bool) error {
	out := output.FromContext(cmd.Context())
	content := config.Template(config.Default())

	if stdout {
		out.Print(content)
		return nil
	}

	configPath, err := config.Path()
	if err != nil {
		return err
	}

	if !force {
		if exists, _ := afero.Exists(fs, configPath); exists {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", configPath)
		}
	}

	if err := storage.WriteAtomic(fs, configPath, []byte(content)); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	out.Printf("Created config file: %s\n", configPath)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration, including environment overrides.`,
		Example: `  bg3mm config show          # Show config as TOML
  bg3mm config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			st, err := stateFrom(ctx)
			if err != nil {
				return err
			}
			cfg := st.Config.Snapshot()

			if jsonOutput {
				return out.JSON(cfg)
			}

			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			out.Printf("# %s\n", st.Config.Path())
			out.Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigSetInstancesDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-instances-dir <path>",
		Short: "Change the instances directory",
		Args:  cobra.ExactArgs(1),
		Long: `Change and persist the instances directory.

The directory and an empty index file are created if missing, and the cached
index is reloaded from the new location. Existing instances are not moved.`,
		Example: `  bg3mm config set-instances-dir ~/bg3mm/instances`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			st, err := stateFrom(ctx)
			if err != nil {
				return err
			}

			if err := st.Config.SetInstancesDir(args[0]); err != nil {
				return fmt.Errorf("set instances_dir: %w", err)
			}
			dir := st.Config.InstancesDir()
			l.Debug("instances directory changed", "dir", dir)

			idx, err := appstate.EnsureIndex(ctx, st.FS, dir)
			if err != nil {
				return err
			}
			st.Index.Replace(idx)

			out.Printf("instances_dir = %s (%d instances)\n", dir, len(idx.Instances))
			return nil
		},
	}
}

func newConfigSetGameDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-game-dir <path>",
		Short: "Record the game install directory",
		Args:  cobra.ExactArgs(1),
		Long: `Record and persist the game install directory. An empty path clears it.`,
		Example: `  bg3mm config set-game-dir "~/.steam/steam/steamapps/common/Baldurs Gate 3"
  bg3mm config set-game-dir ""`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			st, err := stateFrom(ctx)
			if err != nil {
				return err
			}

			if err := st.Config.SetGameDir(args[0]); err != nil {
				return fmt.Errorf("set game_dir: %w", err)
			}

			if dir := st.Config.GameDir(); dir != "" {
				out.Printf("game_dir = %s\n", dir)
			} else {
				out.Println("game_dir cleared")
			}
			return nil
		},
	}
}
