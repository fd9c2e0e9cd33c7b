package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stagehand/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var siteFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent archive runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history journal is disabled in the configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history journal: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limitFlag, siteFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			headers := []string{"When", "Site", "Mode", "Archived", "Remaining", "Past After", "Warnings", "Status"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := "ok"
				if entry.Error != "" {
					status = "error: " + entry.Error
				}
				rows = append(rows, []string{
					entry.RanAt.Local().Format("2006-01-02 15:04"),
					entry.Site,
					entry.Mode,
					strconv.Itoa(entry.Archived),
					strconv.Itoa(entry.Remaining),
					strconv.Itoa(entry.PastAfter),
					strconv.Itoa(entry.Warnings),
					status,
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&siteFlag, "site", "", "Only list runs for the named site")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit entries as JSON")

	return cmd
}
