// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads the YAML scene list that drives batch exports.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blendexport/internal/exporter"
)

// File is the on-disk manifest format: a list of scenes to export and an
// optional shared output directory.
//
//	out_dir: assets/models
//	scenes:
//	  - blend: scenes/player.blend
//	  - blend: scenes/fire.blend
//	    out: assets/models/campfire.glb
type File struct {
	// OutDir is the default output directory for entries without an
	// explicit out path.
	OutDir string `yaml:"out_dir,omitempty"`

	// Scenes lists the scenes to export.
	Scenes []Entry `yaml:"scenes"`
}

// Entry names one scene and, optionally, its destination.
type Entry struct {
	// Blend is the source scene file. Required.
	Blend string `yaml:"blend"`

	// Out is the GLB destination. When empty it defaults to the blend
	// basename with a .glb extension, under OutDir.
	Out string `yaml:"out,omitempty"`
}

// Load reads the manifest at path and resolves each entry into a scene.
// Paths are interpreted relative to the working directory, matching how
// they would be typed on the command line.
func Load(path string) ([]exporter.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if len(f.Scenes) == 0 {
		return nil, fmt.Errorf("manifest %s lists no scenes", path)
	}

	scenes := make([]exporter.Scene, len(f.Scenes))
	for i, e := range f.Scenes {
		if e.Blend == "" {
			return nil, fmt.Errorf("manifest %s: scene %d has no blend path", path, i)
		}
		out := e.Out
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(e.Blend), filepath.Ext(e.Blend))
			out = filepath.Join(f.OutDir, base+".glb")
		}
		scenes[i] = exporter.Scene{BlendPath: e.Blend, OutPath: out}
	}
	return scenes, nil
}
