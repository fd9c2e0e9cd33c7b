// Package backup snapshots a site's shows document before any run can
// touch it. The snapshot is taken before validation on purpose: a corrupt
// source file is exactly the one worth capturing.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stagehand/internal/fileutil"
)

// Artifact describes one completed snapshot. ReportPath is where the
// accompanying human-readable report belongs; writing it is the caller's
// job so report rendering stays out of this package.
type Artifact struct {
	Timestamp  string
	SourcePath string
	DataPath   string
	ReportPath string
	SHA256     string
	Size       int64
	ModTime    time.Time
}

// TimestampLayout is second-resolution and filesystem-safe (no colons or
// periods), shared by every artifact written for a run.
const TimestampLayout = "20060102-150405"

// Snapshot copies the document at docPath byte-for-byte into backupDir,
// verifying the copy against a SHA-256 digest of the source. A snapshot
// failure must abort the run for that site before any mutation is
// attempted.
func Snapshot(docPath, backupDir string, now time.Time) (*Artifact, error) {
	info, err := os.Stat(docPath)
	if err != nil {
		return nil, fmt.Errorf("stat shows document: %w", err)
	}

	if err := fileutil.EnsureDir(backupDir); err != nil {
		return nil, err
	}

	timestamp := now.Format(TimestampLayout)
	dataPath := filepath.Join(backupDir, fmt.Sprintf("shows-backup-%s.json", timestamp))
	digest, size, err := fileutil.CopyVerified(docPath, dataPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", docPath, err)
	}

	return &Artifact{
		Timestamp:  timestamp,
		SourcePath: docPath,
		DataPath:   dataPath,
		ReportPath: filepath.Join(backupDir, fmt.Sprintf("shows-backup-%s-report.md", timestamp)),
		SHA256:     digest,
		Size:       size,
		ModTime:    info.ModTime(),
	}, nil
}
