package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stagehand/internal/config"
	"stagehand/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	sites      []config.Site
}

// setupCLITestEnv writes a config file pointing at freshly created site
// fixtures and returns its path for --config.
func setupCLITestEnv(t *testing.T, documents map[string]string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	var sites []config.Site
	var siteBlocks strings.Builder
	for _, name := range sortedKeys(documents) {
		site := testsupport.NewSite(t, name, documents[name])
		sites = append(sites, site)
		fmt.Fprintf(&siteBlocks, "[[sites]]\nname = %q\nshows_file = %q\nbackup_dir = %q\n\n",
			site.Name, site.ShowsFile, site.BackupDir)
	}

	content := fmt.Sprintf(`state_dir = %q

[logging]
format = "console"
level = "error"

[history]
enabled = true

%s`, filepath.Join(base, "state"), siteBlocks.String())

	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, sites: sites}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
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
