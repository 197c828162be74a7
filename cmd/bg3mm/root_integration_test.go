//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lilydev/bg3mm/internal/config"
	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/output"
)

// setupHome points bg3mm at a fresh config file and instances directory.
// Returns the instances directory.
func setupHome(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	instancesDir := filepath.Join(dir, "instances")
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "config.toml"))
	t.Setenv(config.EnvInstancesDir, instancesDir)
	return instancesDir
}

// runCLI runs the full command tree with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &stdout)

	root := newRootCmd(&stderr)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// TestCLI_Lifecycle verifies create, list, show and delete against the real
// filesystem.
//
// Scenario: User creates two instances, lists them and deletes one
// Expected: Directories and index file follow every step
func TestCLI_Lifecycle(t *testing.T) {
	instancesDir := setupHome(t)

	if _, _, err := runCLI(t, "create", "Honour run"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := runCLI(t, "create", "Tactician"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Each run bootstraps and loads the index, so no --refresh is needed.
	out, _, err := runCLI(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Honour run") || !strings.Contains(out, "Tactician") {
		t.Errorf("list output:\n%s", out)
	}

	out, _, err = runCLI(t, "path", "Tactician")
	if err != nil {
		t.Fatalf("path failed: %v", err)
	}
	dir := strings.TrimSpace(out)
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("instance dir %s: %v", dir, err)
	}

	if _, _, err := runCLI(t, "delete", "Tactician", "-f"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("instance dir should be gone, stat err = %v", err)
	}

	data, err := os.ReadFile(instance.IndexPath(instancesDir))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if strings.Contains(string(data), "Tactician") || !strings.Contains(string(data), "Honour run") {
		t.Errorf("index after delete:\n%s", data)
	}
}

// TestCLI_FirstRunCreatesFiles verifies bootstrap on a clean machine.
//
// Scenario: User runs `bg3mm list` before any config exists
// Expected: Config file and empty index are written
func TestCLI_FirstRunCreatesFiles(t *testing.T) {
	instancesDir := setupHome(t)

	out, _, err := runCLI(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No instances found") {
		t.Errorf("list output = %q", out)
	}

	if _, err := os.Stat(os.Getenv(config.EnvConfigPath)); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	data, err := os.ReadFile(instance.IndexPath(instancesDir))
	if err != nil {
		t.Fatalf("index not created: %v", err)
	}
	if !strings.Contains(string(data), `"instances": []`) {
		t.Errorf("new index = %s", data)
	}
}

// TestCLI_Verbose verifies that --verbose logs file operations to stderr.
func TestCLI_Verbose(t *testing.T) {
	instancesDir := setupHome(t)

	_, stderr, err := runCLI(t, "create", "Honour run", "-v")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(stderr, "write "+instance.IndexPath(instancesDir)) {
		t.Errorf("verbose stderr missing index write:\n%s", stderr)
	}
}

// TestCLI_ConfigInitSkipsBootstrap verifies that `config init` writes the
// template itself instead of the bootstrap defaults.
func TestCLI_ConfigInitSkipsBootstrap(t *testing.T) {
	setupHome(t)

	if _, _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	data, err := os.ReadFile(os.Getenv(config.EnvConfigPath))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "# bg3mm configuration") {
		t.Errorf("config file is not the template:\n%s", data)
	}
}
