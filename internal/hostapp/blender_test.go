// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hostapp

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blendexport/internal/exporter"
	"github.com/pdiddy/blendexport/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	versionOK     bool
	versionOut    string

	streamedName string
	streamedArgs []string
	streamedErr  error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	if m.versionOK {
		return nil
	}
	return errors.New("command failed: " + name)
}

func (m *mockExecutor) Output(name string, args ...string) (string, error) {
	if !m.versionOK {
		return "", errors.New("command failed: " + name)
	}
	return m.versionOut, nil
}

func (m *mockExecutor) RunStreamed(name string, args []string, stdout, stderr io.Writer) error {
	m.streamedName = name
	m.streamedArgs = args
	return m.streamedErr
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.HostConfig
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name:     "default binary on PATH",
			cfg:      types.HostConfig{},
			exec:     &mockExecutor{availableBins: map[string]bool{"blender": true}, versionOK: true},
			wantName: "blender",
		},
		{
			name:     "configured binary",
			cfg:      types.HostConfig{Binary: "/opt/blender-4.2/blender"},
			exec:     &mockExecutor{availableBins: map[string]bool{"/opt/blender-4.2/blender": true}, versionOK: true},
			wantName: "/opt/blender-4.2/blender",
		},
		{
			name:    "binary missing",
			cfg:     types.HostConfig{},
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: true,
		},
		{
			name:    "binary present but version probe fails",
			cfg:     types.HostConfig{},
			exec:    &mockExecutor{availableBins: map[string]bool{"blender": true}, versionOK: false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(tt.cfg, &bytes.Buffer{}, tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestVersion(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"blender": true},
		versionOK:     true,
		versionOut:    "Blender 4.2.1\n\tbuild date: 2024-08-19\n",
	}
	rt, err := detect(types.HostConfig{}, &bytes.Buffer{}, exec)
	require.NoError(t, err)

	v, err := rt.Version()
	require.NoError(t, err)
	assert.Equal(t, "Blender 4.2.1", v)
}

func TestExportInvocation(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"blender": true},
		versionOK:     true,
	}
	cfg := types.HostConfig{ExtraArgs: []string{"--factory-startup"}}
	rt, err := detect(cfg, &bytes.Buffer{}, exec)
	require.NoError(t, err)

	err = rt.Export("scenes/player.blend", "assets/player.glb", exporter.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "blender", exec.streamedName)
	args := exec.streamedArgs
	require.GreaterOrEqual(t, len(args), 7)
	assert.Equal(t, []string{"--background", "scenes/player.blend", "--factory-startup"}, args[:3])

	// The python expression carries the destination and the fixed profile.
	exprIdx := -1
	for i, a := range args {
		if a == "--python-expr" {
			exprIdx = i + 1
		}
	}
	require.Greater(t, exprIdx, 0, "missing --python-expr in %v", args)
	expr := args[exprIdx]
	assert.True(t, strings.HasPrefix(expr, "import bpy; bpy.ops.export_scene.gltf(filepath='assets/player.glb'"), expr)
	assert.Contains(t, expr, "export_format='GLB'")
	assert.Contains(t, expr, "export_materials='NONE'")

	// Documented invocation contract: the destination follows a "--".
	assert.Equal(t, []string{"--", "assets/player.glb"}, args[len(args)-2:])
}

func TestExportError(t *testing.T) {
	runErr := errors.New("exit status 1")
	exec := &mockExecutor{
		availableBins: map[string]bool{"blender": true},
		versionOK:     true,
		streamedErr:   runErr,
	}
	rt, err := detect(types.HostConfig{}, &bytes.Buffer{}, exec)
	require.NoError(t, err)

	err = rt.Export("scene.blend", "out.glb", exporter.DefaultOptions())
	require.ErrorIs(t, err, runErr)
	assert.Contains(t, err.Error(), "scene.blend")
}
