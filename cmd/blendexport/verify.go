// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blendexport/internal/glb"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Check the container framing of GLB files",
	Long: `Verify parses each file's GLB header and chunk table: the glTF magic,
version 2, a leading JSON chunk, and the declared byte length. The scene
document inside the container is not inspected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Bool("json", false, "emit results as JSON")

	rootCmd.AddCommand(verifyCmd)
}

// verifyResult is the per-file outcome, shared by text and JSON output.
type verifyResult struct {
	Path  string    `json:"path"`
	Valid bool      `json:"valid"`
	Error string    `json:"error,omitempty"`
	Info  *glb.Info `json:"info,omitempty"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	results := make([]verifyResult, 0, len(args))
	bad := 0
	for _, path := range args {
		info, err := glb.Verify(path)
		r := verifyResult{Path: path, Valid: err == nil, Info: info}
		if err != nil {
			r.Error = err.Error()
			bad++
		}
		results = append(results, r)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "ok:  %s (glTF %d, %d bytes, json %d, bin %d)\n",
					r.Path, r.Info.Version, r.Info.Length, r.Info.JSONSize, r.Info.BinSize)
			} else {
				fmt.Fprintf(out, "bad: %s (%s)\n", r.Path, r.Error)
			}
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d file(s) failed verification", bad)
	}
	return nil
}
