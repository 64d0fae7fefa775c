// Package loc carries source positions and ranges used by every AST node
// and every diagnostic produced by the reader, source manager and namespace
// packages.
package loc

import "fmt"

// Location is a value type pointing at a single byte in a namespace's
// source. The byte itself is not stored here: Offset (valid when Known) names a
// position inside whatever buffer the owning sourcemgr.SourceManager holds,
// so a Location stays cheap to clone and never outlives the manager that
// can resolve it.
type Location struct {
	NS       string
	Filename string // empty means "no filename"
	HasFile  bool

	Offset    int // byte offset into the originating buffer, if Known
	Line, Col uint16

	Known bool
}

// Unknown returns an unknown location for the given namespace.
func Unknown(ns string) Location {
	return Location{NS: ns}
}

// Clone returns a copy of loc. Location is a value type so this is just
// here for parity with call sites that read more naturally with an
// explicit copy.
func (l Location) Clone() Location {
	return l
}

func (l Location) String() string {
	if !l.Known {
		return "<unknown>:0:0"
	}
	return fmt.Sprintf("%s:%d:%d", l.NS, l.Line, l.Col)
}

// Range is a (start, end) pair. End equals Start for point locations.
type Range struct {
	Start, End Location
}

// NewRange returns a point range at loc.
func NewRange(l Location) Range {
	return Range{Start: l, End: l}
}

// Known reports whether the range's start carries a known location.
func (r Range) Known() bool {
	return r.Start.Known
}

func (r Range) String() string {
	return r.Start.String()
}
