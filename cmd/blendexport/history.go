// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blendexport/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled export runs, newest first",
	Long: `History lists export runs recorded in the journal, including failed
ones. Use --scene to restrict the listing to a single source file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().String("scene", "", "only show runs for this scene file")
	historyCmd.Flags().String("journal-dir", "", "directory for the export journal (default: .blendexport)")
	historyCmd.Flags().Bool("json", false, "emit runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	scene, _ := cmd.Flags().GetString("scene")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	j, err := journal.Open(journalDir(cmd))
	if err != nil {
		return err
	}
	defer j.Close()

	records, err := j.List(context.Background(), scene, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no export runs recorded")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s  %-8s  %s -> %s (%d bytes)\n",
			rec.ExportedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Status, rec.BlendPath, rec.OutputPath, rec.OutputSize)
	}
	return nil
}
