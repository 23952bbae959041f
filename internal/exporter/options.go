// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"fmt"
	"strings"
)

// Options is the full set of glTF export settings handed to the host
// exporter. Field names follow the host's keyword arguments.
type Options struct {
	// Format selects the container variant; "GLB" is the single-file
	// binary packaging.
	Format string

	// CheckExisting prompts before overwriting when true. The pipeline
	// always overwrites.
	CheckExisting bool

	UseVisible       bool
	ExportColors     bool
	ExportSkins      bool
	ExportAnimations bool

	// ExportDefBones restricts skinning export to deform bones, excluding
	// control-only rigging bones.
	ExportDefBones bool

	ExportMorph           bool
	OptimizeAnimationSize bool
	ExportYUp             bool

	// ImageFormat is the texture output format; "NONE" drops textures.
	ImageFormat string

	ExportTexcoords    bool
	ExportNormals      bool
	ExportTangents     bool
	ExportMorphNormal  bool
	ExportMorphTangent bool

	// Materials is the material export mode; "NONE" drops materials.
	Materials string
}

// DefaultOptions returns the studio export profile used for every run:
// visible animated geometry with vertex colors and deform-bone skinning,
// no textures, texture coordinates, normals, tangents, or materials.
func DefaultOptions() Options {
	return Options{
		Format:                "GLB",
		CheckExisting:         false,
		UseVisible:            true,
		ExportColors:          true,
		ExportSkins:           true,
		ExportAnimations:      true,
		ExportDefBones:        true,
		ExportMorph:           true,
		OptimizeAnimationSize: true,
		ExportYUp:             true,
		ImageFormat:           "NONE",
		ExportTexcoords:       false,
		ExportNormals:         false,
		ExportTangents:        false,
		ExportMorphNormal:     false,
		ExportMorphTangent:    false,
		Materials:             "NONE",
	}
}

// PythonKwargs renders the options as the keyword-argument list for
// bpy.ops.export_scene.gltf, with the destination path first. The result
// is embedded in a --python-expr invocation.
func (o Options) PythonKwargs(outPath string) string {
	kwargs := []struct {
		name  string
		value string
	}{
		{"filepath", pyString(outPath)},
		{"check_existing", pyBool(o.CheckExisting)},
		{"export_format", pyString(o.Format)},
		{"use_visible", pyBool(o.UseVisible)},
		{"export_colors", pyBool(o.ExportColors)},
		{"export_skins", pyBool(o.ExportSkins)},
		{"export_animations", pyBool(o.ExportAnimations)},
		{"export_def_bones", pyBool(o.ExportDefBones)},
		{"export_morph", pyBool(o.ExportMorph)},
		{"optimize_animation_size", pyBool(o.OptimizeAnimationSize)},
		{"export_yup", pyBool(o.ExportYUp)},
		{"export_image_format", pyString(o.ImageFormat)},
		{"export_texcoords", pyBool(o.ExportTexcoords)},
		{"export_normals", pyBool(o.ExportNormals)},
		{"export_tangents", pyBool(o.ExportTangents)},
		{"export_morph_normal", pyBool(o.ExportMorphNormal)},
		{"export_morph_tangent", pyBool(o.ExportMorphTangent)},
		{"export_materials", pyString(o.Materials)},
	}

	parts := make([]string, len(kwargs))
	for i, kw := range kwargs {
		parts[i] = fmt.Sprintf("%s=%s", kw.name, kw.value)
	}
	return strings.Join(parts, ", ")
}

// pyString quotes s as a Python single-quoted string literal.
func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
