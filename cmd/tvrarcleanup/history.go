package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newHistoryCommand(v *viper.Viper) *cobra.Command {
	var (
		limit     int
		runID     string
		directory string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show what previous sweeps did",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := config.ResolveConfigDir(v)
			if err != nil {
				return err
			}

			db, err := models.NewDatabase(filepath.Join(configDir, config.JournalFileName))
			if err != nil {
				return fmt.Errorf("failed to open journal (is a sweep running?): %w", err)
			}
			defer db.Close()

			var entries []*models.Entry
			switch {
			case runID != "":
				entries, err = db.GetEntriesByRun(runID)
			case directory != "":
				entries, err = db.GetEntriesByDirectory(directory)
			default:
				entries, err = db.GetRecentEntries(limit)
			}
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journal entries")
				return nil
			}
			fmt.Fprintln(out, renderEntries(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of recent entries to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show every entry of one sweep")
	cmd.Flags().StringVar(&directory, "directory", "", "Show the history of one directory or file name")

	return cmd
}

func renderEntries(entries []*models.Entry) string {
	headers := []string{"Time", "Run", "Action", "Outcome", "Directory", "Detail"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.CreatedAt.Local().Format(time.DateTime),
			shortRunID(entry.RunID),
			string(entry.Action),
			string(entry.Outcome),
			entry.Directory,
			entry.Detail,
		})
	}
	return renderTable(headers, rows)
}

// shortRunID keeps the first uuid group, enough to tell sweeps apart
func shortRunID(runID string) string {
	if i := strings.IndexByte(runID, '-'); i > 0 {
		return runID[:i]
	}
	return runID
}
