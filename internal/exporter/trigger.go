// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"fmt"
	"io"
)

// UsageMessage is printed when no output path can be resolved from the
// argument list.
const UsageMessage = "Give the target file after a '--' on the command line"

// Host is the embedding application the trigger drives. It supplies the
// process argument list and performs the actual scene export.
type Host interface {
	// Args returns the argument list the output path is resolved from.
	Args() []string

	// Export writes the loaded scene to outPath with the given options,
	// overwriting any existing file.
	Export(outPath string, opts Options) error
}

// Trigger is the load-complete callback: it resolves the output path from
// the host's arguments and invokes the host exporter with the fixed
// option profile.
type Trigger struct {
	host Host
	opts Options
	out  io.Writer
}

// NewTrigger builds a trigger for the given host. Usage errors are
// reported on w.
func NewTrigger(host Host, w io.Writer) *Trigger {
	return &Trigger{host: host, opts: DefaultOptions(), out: w}
}

// LoadComplete runs one export against the host. A missing output path is
// reported on the trigger's writer and swallowed, so the host's event
// dispatch never sees it. Errors from the host exporter itself propagate
// unchanged: no retry, no cleanup, no path validation.
func (t *Trigger) LoadComplete() error {
	path, ok := OutputPath(t.host.Args())
	if !ok {
		fmt.Fprintln(t.out, UsageMessage)
		return nil
	}
	return t.host.Export(path, t.opts)
}

// Hook is a callback fired after the host finishes loading a scene.
type Hook func() error

// Hooks is an ordered registry of load-complete callbacks. It stands in
// for the host's own post-load handler list when the embedding
// application exposes none.
type Hooks struct {
	loadPost []Hook
}

// Register appends fn to the load-complete list.
func (h *Hooks) Register(fn Hook) {
	h.loadPost = append(h.loadPost, fn)
}

// FireLoadComplete runs the registered hooks in registration order,
// synchronously, stopping at the first error.
func (h *Hooks) FireLoadComplete() error {
	for _, fn := range h.loadPost {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
