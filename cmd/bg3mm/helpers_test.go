package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/appstate"
	"github.com/lilydev/bg3mm/internal/config"
	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/output"
)

const (
	testConfigPath   = "/home/u/.config/bg3mm/config.toml"
	testInstancesDir = "/data/instances"
)

var (
	idHonour = uuid.MustParse("6f1c9a52-3b5e-4f7a-9d2c-1e8b7a6c5d40")
	idTactic = uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
)

func TestMain(m *testing.M) {
	// Never prompt, even when the tests run in a terminal.
	isInteractive = func() bool { return false }
	os.Exit(m.Run())
}

// testEnv is an in-memory bg3mm installation.
type testEnv struct {
	t      *testing.T
	fs     afero.Fs
	state  *appstate.State
	stdout *bytes.Buffer
}

// newTestEnv bootstraps state over an in-memory filesystem. Ids handed out
// by create come from ids, in order.
func newTestEnv(t *testing.T, ids ...uuid.UUID) *testEnv {
	t.Helper()
	t.Setenv(config.EnvInstancesDir, "")

	fs := afero.NewMemMapFs()
	if err := config.Save(fs, testConfigPath, config.Config{InstancesDir: testInstancesDir}); err != nil {
		t.Fatalf("config.Save() error: %v", err)
	}

	next := 0
	gen := func() (uuid.UUID, error) {
		if next >= len(ids) {
			t.Fatal("out of test ids")
		}
		id := ids[next]
		next++
		return id, nil
	}

	st, err := appstate.Bootstrap(context.Background(), fs, testConfigPath, instance.WithIDGenerator(gen))
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	return &testEnv{t: t, fs: fs, state: st, stdout: &bytes.Buffer{}}
}

// ctx returns a context carrying the state and the stdout buffer.
func (e *testEnv) ctx() context.Context {
	ctx := appstate.WithState(context.Background(), e.state)
	return output.WithPrinter(ctx, e.stdout)
}

// run executes cmd with args against the environment and returns stdout.
func (e *testEnv) run(cmd *cobra.Command, args ...string) (string, error) {
	e.t.Helper()
	e.stdout.Reset()

	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(e.ctx())
	return e.stdout.String(), err
}

// mustRun is run that fails the test on error.
func (e *testEnv) mustRun(cmd *cobra.Command, args ...string) string {
	e.t.Helper()
	out, err := e.run(cmd, args...)
	if err != nil {
		e.t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	return out
}

// diskIndex reads the index file.
func (e *testEnv) diskIndex() instance.Index {
	e.t.Helper()
	idx, err := instance.LoadIndex(e.fs, testInstancesDir)
	if err != nil {
		e.t.Fatalf("LoadIndex() error: %v", err)
	}
	return idx
}

func TestNeedsState(t *testing.T) {
	t.Parallel()

	root := newRootCmd(&bytes.Buffer{})
	completion := &cobra.Command{Use: "completion"}
	completion.AddCommand(&cobra.Command{Use: "bash"})
	root.AddCommand(completion)

	tests := []struct {
		path []string
		want bool
	}{
		{[]string{"list"}, true},
		{[]string{"config", "show"}, true},
		{[]string{"config", "init"}, false},
		{[]string{"completion", "bash"}, false},
	}

	for _, tt := range tests {
		cmd, _, err := root.Find(tt.path)
		if err != nil {
			t.Fatalf("Find(%v) error: %v", tt.path, err)
		}
		if got := needsState(cmd); got != tt.want {
			t.Errorf("needsState(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestToleratesBadIndex(t *testing.T) {
	t.Parallel()

	root := newRootCmd(&bytes.Buffer{})

	tests := []struct {
		path []string
		want bool
	}{
		{[]string{"doctor"}, true},
		{[]string{"config", "set-instances-dir"}, true},
		{[]string{"config", "show"}, true},
		{[]string{"list"}, false},
		{[]string{"delete"}, false},
	}

	for _, tt := range tests {
		cmd, _, err := root.Find(tt.path)
		if err != nil {
			t.Fatalf("Find(%v) error: %v", tt.path, err)
		}
		if got := toleratesBadIndex(cmd); got != tt.want {
			t.Errorf("toleratesBadIndex(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStateFrom_Missing(t *testing.T) {
	t.Parallel()

	if _, err := stateFrom(context.Background()); err == nil {
		t.Error("stateFrom() without state should fail")
	}
}
