package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stagehand/internal/history"
	"stagehand/internal/logging"
	"stagehand/internal/runner"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var applyFlag bool
	var verifyFlag bool
	var dateFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move past shows from upcoming to past for every configured site",
		Long: `Archive runs the full pipeline for every configured site: snapshot the
shows document, validate it, partition upcoming shows by date, and write a
run report. Without flags nothing is modified (preview). --apply persists
the partition; --verify stops after the backup and structural checks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if applyFlag && verifyFlag {
				return errors.New("--apply and --verify are mutually exclusive")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			mode := runner.ModePreview
			switch {
			case applyFlag:
				mode = runner.ModeApply
			case verifyFlag:
				mode = runner.ModeVerify
			}

			today := time.Now()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("parse --date %q (want YYYY-MM-DD): %w", dateFlag, err)
				}
				today = parsed
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			var journal *history.Store
			if cfg.History.Enabled {
				journal, err = history.Open(cfg.History.Path)
				if err != nil {
					return fmt.Errorf("open history journal: %w", err)
				}
				defer journal.Close()
			}

			results := runner.New(cfg, logger, journal).Run(cmd.Context(), mode, today)

			if jsonFlag {
				if err := writeJSON(cmd, resultsToJSON(results)); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderResultsTable(results))
			}

			if fatal := runner.FatalCount(results); fatal > 0 {
				return fmt.Errorf("%d of %d site(s) failed", fatal, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyFlag, "apply", false, "Write the computed partition instead of previewing it")
	cmd.Flags().BoolVar(&verifyFlag, "verify", false, "Backup and validate only; skip partitioning entirely")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit per-site results as JSON")

	return cmd
}

type siteResultJSON struct {
	Site           string   `json:"site"`
	Mode           string   `json:"mode"`
	RunID          string   `json:"runId"`
	UpcomingBefore int      `json:"upcomingBefore"`
	PastBefore     int      `json:"pastBefore"`
	Archived       int      `json:"archived"`
	Remaining      int      `json:"remaining"`
	PastAfter      int      `json:"pastAfter"`
	Written        bool     `json:"written"`
	Backup         string   `json:"backup,omitempty"`
	Report         string   `json:"report,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func resultsToJSON(results []runner.Result) []siteResultJSON {
	out := make([]siteResultJSON, 0, len(results))
	for _, result := range results {
		upcomingBefore, pastBefore, archived, remaining, pastAfter := result.Counts()
		item := siteResultJSON{
			Site:           result.Site.Name,
			Mode:           string(result.Mode),
			RunID:          result.RunID,
			UpcomingBefore: upcomingBefore,
			PastBefore:     pastBefore,
			Archived:       archived,
			Remaining:      remaining,
			PastAfter:      pastAfter,
			Written:        result.Written,
			Report:         result.ReportPath,
		}
		if result.Artifact != nil {
			item.Backup = result.Artifact.DataPath
		}
		if result.Plan != nil {
			for _, warning := range result.Plan.Warnings {
				item.Warnings = append(item.Warnings, warning.Message)
			}
		}
		if result.Err != nil {
			item.Error = result.Err.Error()
		}
		out = append(out, item)
	}
	return out
}

func renderResultsTable(results []runner.Result) string {
	headers := []string{"Site", "Mode", "Upcoming", "Archived", "Remaining", "Past After", "Status"}
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		upcomingBefore, _, archived, remaining, pastAfter := result.Counts()
		status := "ok"
		switch {
		case result.Err != nil:
			status = "error: " + result.Err.Error()
		case result.Plan != nil && len(result.Plan.ErrorWarnings()) > 0:
			status = "check errors in report"
		case result.Plan != nil && len(result.Plan.Warnings) > 0:
			status = "ok (" + strconv.Itoa(len(result.Plan.Warnings)) + " warning(s))"
		case result.Mode == runner.ModeVerify:
			status = "verified"
		case result.Plan != nil && !result.Plan.HasChanges():
			status = "no changes needed"
		}
		rows = append(rows, []string{
			result.Site.Name,
			string(result.Mode),
			strconv.Itoa(upcomingBefore),
			strconv.Itoa(archived),
			strconv.Itoa(remaining),
			strconv.Itoa(pastAfter),
			status,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}
