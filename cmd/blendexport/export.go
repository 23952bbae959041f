// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blendexport/internal/exporter"
	"github.com/pdiddy/blendexport/internal/glb"
	"github.com/pdiddy/blendexport/internal/hostapp"
	"github.com/pdiddy/blendexport/internal/journal"
	"github.com/pdiddy/blendexport/internal/manifest"
)

var exportCmd = &cobra.Command{
	Use:   "export [scene.blend] -- [output.glb]",
	Short: "Export Blender scenes to GLB with the studio profile",
	Long: `Export drives Blender in background mode to write a single-file GLB,
overwriting any existing file at the destination.

A single scene takes its destination after a '--' separator, matching the
host's own argument convention:

  blendexport export scenes/player.blend -- assets/player.glb

With --manifest, every scene listed in the manifest is exported; scenes
whose sources are unchanged since the last journaled run are skipped.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("manifest", "", "YAML scene manifest for batch export")
	exportCmd.Flags().String("journal-dir", "", "directory for the export journal (default: .blendexport)")
	exportCmd.Flags().Bool("force", false, "re-export scenes even when the journal says they are up to date")
	exportCmd.Flags().Bool("no-verify", false, "skip GLB container verification after export")

	rootCmd.AddCommand(exportCmd)
}

// cliHost adapts the detected Blender runtime and the journaling runner
// to the trigger's host interface. Its argument list is the real process
// argv, where the destination follows the '--' separator.
type cliHost struct {
	runner *exporter.Runner
	blend  string
	argv   []string
}

func (h *cliHost) Args() []string { return h.argv }

func (h *cliHost) Export(outPath string, opts exporter.Options) error {
	return h.runner.ExportTo(h.blend, outPath, opts)
}

func runExport(cmd *cobra.Command, args []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	force, _ := cmd.Flags().GetBool("force")
	noVerify, _ := cmd.Flags().GetBool("no-verify")

	// Cobra strips the '--' from args; everything before it is positional.
	pre := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		pre = args[:dash]
	}
	if manifestPath == "" && len(pre) != 1 {
		return fmt.Errorf("exactly one scene file is required (or use --manifest)")
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
		Force:    force,
		Out:      cmd.OutOrStdout(),
	}
	if !noVerify {
		runner.Verify = func(path string) error {
			_, err := glb.Verify(path)
			return err
		}
	}

	if manifestPath != "" {
		scenes, err := manifest.Load(manifestPath)
		if err != nil {
			return err
		}
		result := runner.ExportBatch(scenes)
		if result.HasFailures() {
			return fmt.Errorf("%d scene(s) failed to export", result.Failed)
		}
		return nil
	}

	// Single-scene mode routes through the load-complete trigger: the
	// destination is scraped from the process argument list, and a
	// missing one prints a usage message without failing the command.
	hooks := &exporter.Hooks{}
	trigger := exporter.NewTrigger(&cliHost{
		runner: runner,
		blend:  pre[0],
		argv:   os.Args[1:],
	}, cmd.OutOrStdout())
	hooks.Register(trigger.LoadComplete)

	if err := hooks.FireLoadComplete(); err != nil {
		return err
	}
	if out, ok := exporter.OutputPath(os.Args[1:]); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "exported: %s -> %s\n", pre[0], out)
	}
	return nil
}
