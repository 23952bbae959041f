// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/blendexport/pkg/types"
)

// Scene pairs a source scene file with its export destination.
type Scene struct {
	BlendPath string
	OutPath   string
}

// SceneExporter turns a scene file into a GLB at outPath. The Blender
// runtime implements it; tests substitute fakes.
type SceneExporter interface {
	Export(blendPath, outPath string, opts Options) error
}

// Recorder persists export outcomes and answers whether a scene's output
// is already current. The SQLite journal implements it.
type Recorder interface {
	// UpToDate reports whether the last successful export of blendPath
	// recorded the same source modification time.
	UpToDate(blendPath string, modTime time.Time) bool

	// Record stores the outcome of one export run.
	Record(rec types.ExportRecord) error
}

// BatchResult holds the outcome of a batch export run.
type BatchResult struct {
	Exported int
	Skipped  int
	Failed   int
}

// Total returns the total number of scenes processed.
func (r BatchResult) Total() int {
	return r.Exported + r.Skipped + r.Failed
}

// HasFailures reports whether any scenes failed to export.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Runner drives scene exports through a SceneExporter, with optional
// journaling and output verification.
type Runner struct {
	Exporter SceneExporter
	Options  Options

	// Journal, when non-nil, records runs and supplies the up-to-date
	// skip for batches.
	Journal Recorder

	// Verify, when non-nil, checks the produced file after a successful
	// host export. A verification failure counts as an export failure.
	Verify func(path string) error

	// Force disables the up-to-date skip.
	Force bool

	// Out receives per-scene status lines.
	Out io.Writer
}

// ExportTo exports a single scene, overwriting any existing output. The
// journal skip does not apply; any error from the host exporter (or from
// output verification) is returned unchanged for the caller to surface.
func (r *Runner) ExportTo(blendPath, outPath string, opts Options) error {
	info, err := os.Stat(blendPath)
	if err != nil {
		return fmt.Errorf("reading scene %s: %w", blendPath, err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	if err := r.Exporter.Export(blendPath, outPath, opts); err != nil {
		r.record(blendPath, outPath, info.ModTime(), 0, types.ExportFailed)
		return err
	}

	if r.Verify != nil {
		if err := r.Verify(outPath); err != nil {
			r.record(blendPath, outPath, info.ModTime(), 0, types.ExportFailed)
			return fmt.Errorf("verifying %s: %w", outPath, err)
		}
	}

	var size int64
	if out, err := os.Stat(outPath); err == nil {
		size = out.Size()
	}
	r.record(blendPath, outPath, info.ModTime(), size, types.ExportDone)
	return nil
}

// ExportScene drives one scene inside a batch, translating the outcome
// into a status line on r.Out. Scenes whose journal entry records the
// current source modification time are skipped unless Force is set.
func (r *Runner) ExportScene(s Scene) types.ExportStatus {
	base := filepath.Base(s.BlendPath)

	info, err := os.Stat(s.BlendPath)
	if err != nil {
		fmt.Fprintf(r.Out, "failed:   %s (%v)\n", base, err)
		return types.ExportFailed
	}

	if !r.Force && r.Journal != nil && r.Journal.UpToDate(s.BlendPath, info.ModTime()) {
		if _, err := os.Stat(s.OutPath); err == nil {
			fmt.Fprintf(r.Out, "skipped:  %s (up to date)\n", base)
			return types.ExportSkipped
		}
	}

	if err := r.ExportTo(s.BlendPath, s.OutPath, r.Options); err != nil {
		fmt.Fprintf(r.Out, "failed:   %s (%v)\n", base, err)
		return types.ExportFailed
	}

	fmt.Fprintf(r.Out, "exported: %s -> %s\n", base, s.OutPath)
	return types.ExportDone
}

// ExportBatch processes a list of scenes, printing per-scene status to
// r.Out and returning a summary. A failed scene does not abort the batch.
func (r *Runner) ExportBatch(scenes []Scene) BatchResult {
	var result BatchResult
	for _, s := range scenes {
		switch r.ExportScene(s) {
		case types.ExportDone:
			result.Exported++
		case types.ExportSkipped:
			result.Skipped++
		case types.ExportFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(r.Out, "\nBatch summary: %d exported, %d skipped, %d failed (total: %d)\n",
		result.Exported, result.Skipped, result.Failed, result.Total())
	return result
}

func (r *Runner) record(blendPath, outPath string, modTime time.Time, size int64, status types.ExportStatus) {
	if r.Journal == nil {
		return
	}
	rec := types.ExportRecord{
		BlendPath:     blendPath,
		OutputPath:    outPath,
		SourceModTime: modTime,
		OutputSize:    size,
		Status:        status,
		ExportedAt:    time.Now().UTC(),
	}
	if err := r.Journal.Record(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal record failed: %v\n", err)
	}
}
