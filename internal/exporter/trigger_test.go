// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// fakeHost records export calls and returns a configured error.
type fakeHost struct {
	args  []string
	err   error
	calls []struct {
		path string
		opts Options
	}
}

func (f *fakeHost) Args() []string { return f.args }

func (f *fakeHost) Export(outPath string, opts Options) error {
	f.calls = append(f.calls, struct {
		path string
		opts Options
	}{outPath, opts})
	return f.err
}

func TestTriggerLoadComplete(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCalls int
		wantPath  string
		wantUsage bool
	}{
		{
			name:      "exports to the path after the separator",
			args:      []string{"--background", "scene.blend", "--", "model.glb"},
			wantCalls: 1,
			wantPath:  "model.glb",
		},
		{
			name:      "no separator prints usage and skips the export",
			args:      []string{"--background", "scene.blend"},
			wantUsage: true,
		},
		{
			name:      "trailing separator prints usage and skips the export",
			args:      []string{"scene.blend", "--"},
			wantUsage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{args: tt.args}
			var out bytes.Buffer

			err := NewTrigger(host, &out).LoadComplete()
			if err != nil {
				t.Fatalf("LoadComplete() = %v, want nil", err)
			}

			if len(host.calls) != tt.wantCalls {
				t.Fatalf("export calls = %d, want %d", len(host.calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 {
				if host.calls[0].path != tt.wantPath {
					t.Errorf("export path = %q, want %q", host.calls[0].path, tt.wantPath)
				}
				if host.calls[0].opts != DefaultOptions() {
					t.Errorf("export options differ from the fixed profile: %+v", host.calls[0].opts)
				}
			}

			gotUsage := strings.Contains(out.String(), UsageMessage)
			if gotUsage != tt.wantUsage {
				t.Errorf("usage message printed = %v, want %v (output %q)", gotUsage, tt.wantUsage, out.String())
			}
		})
	}
}

func TestTriggerPropagatesHostError(t *testing.T) {
	hostErr := errors.New("disk full")
	host := &fakeHost{
		args: []string{"--", "model.glb"},
		err:  hostErr,
	}
	var out bytes.Buffer

	err := NewTrigger(host, &out).LoadComplete()
	if !errors.Is(err, hostErr) {
		t.Fatalf("LoadComplete() = %v, want the host error", err)
	}
	if out.Len() != 0 {
		t.Errorf("host failures must not print the usage message, got %q", out.String())
	}
}

func TestTriggerIdempotent(t *testing.T) {
	host := &fakeHost{args: []string{"--", "model.glb"}}
	trigger := NewTrigger(host, &bytes.Buffer{})

	for i := 0; i < 2; i++ {
		if err := trigger.LoadComplete(); err != nil {
			t.Fatalf("invocation %d: %v", i, err)
		}
	}

	if len(host.calls) != 2 {
		t.Fatalf("export calls = %d, want 2", len(host.calls))
	}
	if host.calls[0] != host.calls[1] {
		t.Errorf("repeat invocations should produce identical export calls: %+v vs %+v",
			host.calls[0], host.calls[1])
	}
}

func TestHooksRunInOrder(t *testing.T) {
	var order []int
	h := &Hooks{}
	h.Register(func() error { order = append(order, 1); return nil })
	h.Register(func() error { order = append(order, 2); return nil })

	if err := h.FireLoadComplete(); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("hook order = %v, want [1 2]", order)
	}
}

func TestHooksStopAtFirstError(t *testing.T) {
	hookErr := errors.New("exporter blew up")
	ran := false

	h := &Hooks{}
	h.Register(func() error { return hookErr })
	h.Register(func() error { ran = true; return nil })

	if err := h.FireLoadComplete(); !errors.Is(err, hookErr) {
		t.Fatalf("FireLoadComplete() = %v, want the hook error", err)
	}
	if ran {
		t.Error("later hooks must not run after a failure")
	}
}
