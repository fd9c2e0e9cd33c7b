package backup_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stagehand/internal/backup"
)

var snapshotTime = time.Date(2025, time.December, 6, 9, 30, 15, 0, time.UTC)

func TestSnapshotCopiesAndDescribesSource(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "shows.json")
	backupDir := filepath.Join(dir, "backups")
	content := []byte(`{"upcoming": [], "past": [], "settings": {}}`)
	if err := os.WriteFile(docPath, content, 0o644); err != nil {
		t.Fatal(err)
	}

	artifact, err := backup.Snapshot(docPath, backupDir, snapshotTime)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	wantData := filepath.Join(backupDir, "shows-backup-20251206-093015.json")
	if artifact.DataPath != wantData {
		t.Fatalf("data path = %s, want %s", artifact.DataPath, wantData)
	}
	wantReport := filepath.Join(backupDir, "shows-backup-20251206-093015-report.md")
	if artifact.ReportPath != wantReport {
		t.Fatalf("report path = %s, want %s", artifact.ReportPath, wantReport)
	}

	copied, err := os.ReadFile(artifact.DataPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != string(content) {
		t.Fatalf("snapshot differs from source")
	}

	sum := sha256.Sum256(content)
	if artifact.SHA256 != hex.EncodeToString(sum[:]) {
		t.Fatalf("digest = %s", artifact.SHA256)
	}
	if artifact.Size != int64(len(content)) {
		t.Fatalf("size = %d, want %d", artifact.Size, len(content))
	}
}

func TestSnapshotCapturesCorruptSource(t *testing.T) {
	// Snapshots run before validation; even unparseable bytes are kept.
	dir := t.TempDir()
	docPath := filepath.Join(dir, "shows.json")
	if err := os.WriteFile(docPath, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	artifact, err := backup.Snapshot(docPath, filepath.Join(dir, "backups"), snapshotTime)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	copied, err := os.ReadFile(artifact.DataPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != "{truncated" {
		t.Fatalf("snapshot differs from corrupt source: %q", copied)
	}
}

func TestSnapshotMissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := backup.Snapshot(filepath.Join(dir, "absent.json"), filepath.Join(dir, "backups"), snapshotTime); err == nil {
		t.Fatal("expected error for missing source")
	}
}
