package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/lilydev/bg3mm/internal/appstate"
	"github.com/lilydev/bg3mm/internal/config"
	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/resolve"
)

// errNoInstances is returned by prompts that need at least one instance.
var errNoInstances = errors.New("no instances (run 'bg3mm create' to add one)")

// loadState bootstraps the process state from the config file on disk.
// The instance index is read into the cache here, once per invocation.
// With tolerant set, an unparsable index leaves the cache empty instead.
func loadState(ctx context.Context, tolerant bool) (*appstate.State, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	if tolerant {
		return appstate.BootstrapTolerant(ctx, afero.NewOsFs(), path)
	}
	return appstate.Bootstrap(ctx, afero.NewOsFs(), path)
}

// stateFrom returns the state attached by the root command.
func stateFrom(ctx context.Context) (*appstate.State, error) {
	st := appstate.FromContext(ctx)
	if st == nil {
		return nil, fmt.Errorf("bg3mm state not initialized")
	}
	return st, nil
}

// managerFrom returns an instance manager for the attached state.
func managerFrom(ctx context.Context) (*instance.Manager, error) {
	st, err := stateFrom(ctx)
	if err != nil {
		return nil, err
	}
	return st.Manager(), nil
}

// resolveInstance turns a command-line reference into an id using the cached index.
func resolveInstance(m *instance.Manager, ref string) (uuid.UUID, error) {
	return resolve.ID(m.Index(), ref)
}

// describe returns "name (id)" for an indexed instance, or just the id.
func describe(m *instance.Manager, id uuid.UUID) string {
	if info, ok := m.Index().Find(id); ok {
		return fmt.Sprintf("%s (%s)", info.Name, id)
	}
	return id.String()
}

// isInteractive reports whether stdin is a terminal we can prompt on.
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// dirExists reports whether dir exists on the state's filesystem.
func dirExists(ctx context.Context, dir string) (bool, error) {
	st, err := stateFrom(ctx)
	if err != nil {
		return false, err
	}
	return afero.DirExists(st.FS, dir)
}
