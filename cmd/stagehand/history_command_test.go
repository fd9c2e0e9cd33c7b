package main

import (
	"encoding/json"
	"testing"

	"stagehand/internal/history"
)

func TestHistoryAfterApply(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"main": scenarioDocument()})

	if _, _, err := runCLI(t, env.configPath, "archive", "--apply", "--date", "2025-12-06"); err != nil {
		t.Fatalf("archive --apply: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "main")
	requireContains(t, out, "apply")
}

func TestHistoryJSON(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"main": scenarioDocument()})

	if _, _, err := runCLI(t, env.configPath, "archive", "--date", "2025-12-06"); err != nil {
		t.Fatalf("archive: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "history", "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var entries []history.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("parse history JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Mode != "preview" || entries[0].Archived != 1 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"main": scenarioDocument()})

	out, _, err := runCLI(t, env.configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet.")
}
