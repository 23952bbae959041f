// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types of the export pipeline.
package types

import "time"

// ExportStatus indicates the outcome of a single scene export.
type ExportStatus string

const (
	ExportDone    ExportStatus = "exported"
	ExportSkipped ExportStatus = "skipped"
	ExportFailed  ExportStatus = "failed"
)

// ExportRecord is one journal row describing an export run.
type ExportRecord struct {
	// RunID uniquely identifies this run. Assigned by the journal when empty.
	RunID string `json:"run_id" yaml:"run_id"`

	// BlendPath is the source scene file.
	BlendPath string `json:"blend_path" yaml:"blend_path"`

	// OutputPath is the GLB destination.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SourceModTime is the scene file's modification time at export time.
	// The journal uses it to detect unchanged sources.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// OutputSize is the size of the produced GLB in bytes. Zero for
	// failed runs.
	OutputSize int64 `json:"output_size" yaml:"output_size"`

	// Status records whether the run succeeded.
	Status ExportStatus `json:"status" yaml:"status"`

	// ExportedAt is when the run finished.
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
