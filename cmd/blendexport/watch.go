// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/blendexport/internal/exporter"
	"github.com/pdiddy/blendexport/internal/glb"
	"github.com/pdiddy/blendexport/internal/hostapp"
	"github.com/pdiddy/blendexport/internal/journal"
	"github.com/pdiddy/blendexport/internal/manifest"
	"github.com/pdiddy/blendexport/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-export manifest scenes when their sources change",
	Long: `Watch monitors the source files of every scene in the manifest and
re-exports a scene once its file has been quiet for the debounce window.
Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("manifest", "", "YAML scene manifest (required)")
	watchCmd.Flags().String("journal-dir", "", "directory for the export journal (default: .blendexport)")
	watchCmd.Flags().Duration("debounce", 0, "quiet window before a changed scene is re-exported (default: 500ms)")
	watchCmd.Flags().Bool("no-verify", false, "skip GLB container verification after export")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	noVerify, _ := cmd.Flags().GetBool("no-verify")
	if manifestPath == "" {
		return fmt.Errorf("--manifest is required")
	}

	scenes, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	runtime, err := hostapp.Detect(hostConfig(), os.Stderr)
	if err != nil {
		return err
	}

	j, err := journal.Open(journalDir(cmd))
	if err != nil {
		return err
	}
	defer j.Close()

	runner := &exporter.Runner{
		Exporter: runtime,
		Options:  exporter.DefaultOptions(),
		Journal:  j,
		Out:      cmd.OutOrStdout(),
	}
	if !noVerify {
		runner.Verify = func(path string) error {
			_, err := glb.Verify(path)
			return err
		}
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	if debounce <= 0 {
		debounce = viper.GetDuration("watch.debounce")
	}

	w, err := watch.New(runner, scenes, debounce, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Export everything once before settling into the event loop.
	runner.ExportBatch(scenes)

	return w.Run(ctx)
}
