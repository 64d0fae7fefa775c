// Package jit declares the narrow interface the namespace package
// consumes from the downstream JIT execution engine. The engine itself —
// its object cache, dynamic-library stack, and lowering pipeline — is out
// of scope for this module (spec.md §1); only the surface a Namespace
// needs to borrow is specified here.
package jit

import "github.com/lucent-lang/lucent/options"

// Handle is the external collaborator a namespace.Namespace is constructed
// with. Implementations live downstream of this module; Lucent's core only
// ever borrows a Handle, it never owns or extends its lifetime.
type Handle interface {
	// Options returns the engine's current compiler options, including the
	// CompilationPhase that gates namespace.Namespace.ExpandTree.
	Options() options.Options

	// LoadModule registers compiled module data with the engine under name.
	LoadModule(name string, data []byte) error

	// Lookup resolves a previously loaded symbol to a callable address.
	Lookup(symbol string) (uintptr, error)

	// InvokePacked calls a previously loaded symbol with packed arguments
	// and returns its packed result.
	InvokePacked(symbol string, args []uint64) (uint64, error)
}

// NullHandle is a no-op Handle for tests and for driving the reader/source
// manager/namespace trio without a real downstream engine attached.
type NullHandle struct {
	Opts options.Options
}

// NewNullHandle returns a NullHandle carrying the given options.
func NewNullHandle(opts options.Options) *NullHandle {
	return &NullHandle{Opts: opts}
}

func (h *NullHandle) Options() options.Options { return h.Opts }

func (h *NullHandle) LoadModule(name string, data []byte) error { return nil }

func (h *NullHandle) Lookup(symbol string) (uintptr, error) { return 0, nil }

func (h *NullHandle) InvokePacked(symbol string, args []uint64) (uint64, error) {
	return 0, nil
}
