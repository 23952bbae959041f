// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HostConfig holds settings for locating and invoking the host application.
type HostConfig struct {
	// Binary is the path to the Blender executable. When empty the binary
	// is looked up as "blender" on PATH.
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty"`

	// ExtraArgs are appended to every background invocation
	// (e.g. "--factory-startup").
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// JournalDir is the directory holding the export journal database.
	JournalDir string `json:"journal_dir" yaml:"journal_dir"`

	// Manifest is the path to the YAML scene manifest for batch exports.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Force disables the journal's up-to-date skip and re-exports every
	// scene in a batch.
	Force bool `json:"force" yaml:"force"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is how long a changed scene file must stay quiet before it
	// is re-exported (default 500ms). Blender saves touch the file more
	// than once.
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// PipelineConfig groups all stage configurations for the exporter.
type PipelineConfig struct {
	Host   HostConfig   `json:"host" yaml:"host"`
	Export ExportConfig `json:"export" yaml:"export"`
	Watch  WatchConfig  `json:"watch" yaml:"watch"`
}
