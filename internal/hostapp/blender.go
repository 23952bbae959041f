// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hostapp locates the Blender binary and drives it in background
// mode for headless exports.
package hostapp

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/blendexport/internal/exporter"
	"github.com/pdiddy/blendexport/pkg/types"
)

const binBlender = "blender"

// Runtime drives the host 3D application: checking availability,
// reporting its version, and running background exports.
type Runtime interface {
	// Name returns the binary the runtime invokes.
	Name() string

	// Available reports whether the binary exists on PATH and responds
	// to a version query.
	Available() bool

	// Version returns the host's version line (e.g. "Blender 4.2.1").
	Version() (string, error)

	// Export loads blendPath in background mode and exports it to
	// outPath with the given options.
	Export(blendPath, outPath string, opts exporter.Options) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Output(name string, args ...string) (string, error)
	RunStreamed(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

func (o *osExecutor) RunStreamed(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// blender implements Runtime for a Blender binary.
type blender struct {
	bin       string
	extraArgs []string
	exec      executor
	log       io.Writer
}

func (b *blender) Name() string { return b.bin }

func (b *blender) Available() bool {
	if _, err := b.exec.LookPath(b.bin); err != nil {
		return false
	}
	return b.exec.RunSilent(b.bin, "--version") == nil
}

func (b *blender) Version() (string, error) {
	out, err := b.exec.Output(b.bin, "--version")
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", b.bin, err)
	}
	line, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(line), nil
}

// Export runs the host in background mode with a python expression
// rendered from opts. The destination also trails a "--" separator, which
// keeps the documented invocation contract intact for any startup script
// that scrapes the host's argument list. Host output is streamed to the
// runtime's log writer; exit errors propagate unchanged.
func (b *blender) Export(blendPath, outPath string, opts exporter.Options) error {
	expr := fmt.Sprintf("import bpy; bpy.ops.export_scene.gltf(%s)", opts.PythonKwargs(outPath))

	args := []string{"--background", blendPath}
	args = append(args, b.extraArgs...)
	args = append(args, "--python-expr", expr, "--", outPath)

	if err := b.exec.RunStreamed(b.bin, args, b.log, b.log); err != nil {
		return fmt.Errorf("exporting %s with %s: %w", blendPath, b.bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect builds a runtime from cfg and verifies the binary is operational.
// An empty cfg.Binary falls back to "blender" on PATH.
func Detect(cfg types.HostConfig, log io.Writer) (Runtime, error) {
	return detect(cfg, log, defaultExec)
}

func detect(cfg types.HostConfig, log io.Writer, exec executor) (Runtime, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = binBlender
	}

	b := &blender{bin: bin, extraArgs: cfg.ExtraArgs, exec: exec, log: log}
	if !b.Available() {
		return nil, fmt.Errorf("host application %s not found or not operational", bin)
	}
	return b, nil
}
