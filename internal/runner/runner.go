// Package runner drives the per-site archive pipeline: snapshot, validate,
// partition, optional write, report. Sites are processed sequentially in
// configuration order and failures are contained to the site that raised
// them.
//
// The tool assumes it is the sole writer of each shows document; it is run
// by an operator or a non-overlapping scheduled job, and concurrent
// invocations against the same file are not guarded against.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"stagehand/internal/archive"
	"stagehand/internal/backup"
	"stagehand/internal/config"
	"stagehand/internal/history"
	"stagehand/internal/report"
	"stagehand/internal/shows"
)

// Mode selects how far the pipeline runs.
type Mode string

const (
	// ModePreview computes and reports the partition without writing.
	ModePreview Mode = "preview"
	// ModeApply computes, writes, and reports the partition.
	ModeApply Mode = "apply"
	// ModeVerify takes a backup and reports structure and counts only;
	// no partition logic is invoked.
	ModeVerify Mode = "verify"
)

// Result is one site's outcome. Plan is nil in verify mode and when the
// site failed before partitioning.
type Result struct {
	Site       config.Site
	Mode       Mode
	RunID      string
	Artifact   *backup.Artifact
	Plan       *archive.Plan
	ReportPath string
	Upcoming   int
	Past       int
	Written    bool
	Err        error
}

// Counts returns the report numbers for the result, valid whenever the
// document parsed.
func (r *Result) Counts() (upcomingBefore, pastBefore, archived, remaining, pastAfter int) {
	if r.Plan != nil {
		return r.Plan.Counts()
	}
	return r.Upcoming, r.Past, 0, r.Upcoming, r.Past
}

// Runner executes the pipeline for every configured site.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	journal *history.Store
	now     func() time.Time
}

// New constructs a Runner. journal may be nil to disable history
// recording.
func New(cfg *config.Config, logger *slog.Logger, journal *history.Store) *Runner {
	return &Runner{cfg: cfg, logger: logger, journal: journal, now: time.Now}
}

// Run processes every configured site in order against the given reference
// day. A site failure is recorded in its result and never stops the
// remaining sites.
func (r *Runner) Run(ctx context.Context, mode Mode, today time.Time) []Result {
	runID := uuid.NewString()
	results := make([]Result, 0, len(r.cfg.Sites))
	for _, site := range r.cfg.Sites {
		result := r.runSite(ctx, site, mode, today, runID)
		if result.Err != nil {
			r.logger.Error("site run failed", "site", site.Name, "error", result.Err)
		}
		r.record(ctx, &result)
		results = append(results, result)
	}
	return results
}

// FatalCount reports how many sites ended in a fatal error.
func FatalCount(results []Result) int {
	count := 0
	for _, result := range results {
		if result.Err != nil {
			count++
		}
	}
	return count
}

func (r *Runner) runSite(ctx context.Context, site config.Site, mode Mode, today time.Time, runID string) Result {
	result := Result{Site: site, Mode: mode, RunID: runID}
	logger := r.logger.With("site", site.Name)
	info := report.RunInfo{Site: site.Name, RunID: runID, GeneratedAt: r.now()}

	// The snapshot is the prerequisite gate: nothing is touched until the
	// current bytes are safely copied aside.
	artifact, err := backup.Snapshot(site.ShowsFile, site.BackupDir, info.GeneratedAt)
	if err != nil {
		result.Err = fmt.Errorf("backup %s: %w", site.ShowsFile, err)
		return result
	}
	result.Artifact = artifact
	logger.Info("backup created", "path", artifact.DataPath, "sha256", artifact.SHA256[:16], "size", artifact.Size)

	data, err := os.ReadFile(site.ShowsFile)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", site.ShowsFile, err)
		return result
	}

	var doc *shows.Document
	validationErr := shows.ValidateDocument(data)
	if validationErr == nil {
		doc, err = shows.Decode(data)
		if err != nil {
			validationErr = err
		}
	}

	// The backup report is written even for a document that failed
	// validation; the snapshot is most valuable exactly then.
	backupReport := report.Backup(info, artifact, doc)
	if err := os.WriteFile(artifact.ReportPath, []byte(backupReport), 0o644); err != nil {
		result.Err = fmt.Errorf("write backup report: %w", err)
		return result
	}
	logger.Info("backup report written", "path", artifact.ReportPath)

	if validationErr != nil {
		result.Err = fmt.Errorf("validate %s: %w", site.ShowsFile, validationErr)
		return result
	}
	result.Upcoming = len(doc.Upcoming)
	result.Past = len(doc.Past)

	if mode == ModeVerify {
		logger.Info("verify complete", "upcoming", result.Upcoming, "past", result.Past)
		return result
	}

	plan := archive.BuildPlan(doc, today)
	result.Plan = plan
	for _, warning := range plan.Warnings {
		if warning.Level == archive.LevelError {
			logger.Error("sanity check failed", "detail", warning.Message)
		} else {
			logger.Warn("sanity check", "detail", warning.Message)
		}
	}

	if mode == ModeApply && plan.HasChanges() {
		if err := archive.WriteDocument(site.ShowsFile, plan.Apply(doc)); err != nil {
			result.Err = fmt.Errorf("write %s: %w", site.ShowsFile, err)
			return result
		}
		result.Written = true
	}

	kind := report.KindPreview
	if mode == ModeApply {
		kind = report.KindExecuted
	}
	runReport := report.Run(kind, info, plan)
	result.ReportPath = filepath.Join(site.BackupDir, report.RunFileName(kind, artifact.Timestamp))
	if err := os.WriteFile(result.ReportPath, []byte(runReport), 0o644); err != nil {
		result.Err = fmt.Errorf("write run report: %w", err)
		return result
	}

	_, _, archived, remaining, _ := plan.Counts()
	logger.Info("run complete", "mode", string(mode), "archived", archived, "remaining", remaining, "written", result.Written)
	return result
}

func (r *Runner) record(ctx context.Context, result *Result) {
	if r.journal == nil {
		return
	}
	upcomingBefore, pastBefore, archived, remaining, pastAfter := result.Counts()
	entry := history.Entry{
		RunID:          result.RunID,
		Site:           result.Site.Name,
		Mode:           string(result.Mode),
		RanAt:          r.now(),
		UpcomingBefore: upcomingBefore,
		PastBefore:     pastBefore,
		Archived:       archived,
		Remaining:      remaining,
		PastAfter:      pastAfter,
	}
	if result.Plan != nil {
		entry.Warnings = len(result.Plan.Warnings)
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}
	if err := r.journal.Record(ctx, entry); err != nil {
		r.logger.Warn("history record failed", "site", result.Site.Name, "error", err)
	}
}
