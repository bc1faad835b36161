package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
	lineupPath string
}

// setupCLITestEnv writes a config with one file-backed festival and an
// empty lineup export, all under a temp dir.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		dataDir:    filepath.Join(base, "data"),
		lineupPath: filepath.Join(base, "lineup.json"),
	}
	writeTestConfig(t, env)
	writeLineup(t, env, `[]`)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
cache_dir = %q

[logging]
format = "json"
level = "error"

[enrichment]
cache_enabled = false

[[festival]]
slug = "testfest"
name = "Test Fest"
source = "file"
lineup_url = %q

[festival.field_map]
genre = "Genre"
country = "Country"
`,
		env.dataDir,
		filepath.Join(env.baseDir, "logs"),
		filepath.Join(env.baseDir, "cache"),
		env.lineupPath,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeLineup(t *testing.T, env *cliTestEnv, payload string) {
	t.Helper()
	if err := os.WriteFile(env.lineupPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write lineup: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
