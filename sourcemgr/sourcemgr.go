// Package sourcemgr is the authoritative registry of loaded source
// buffers: it owns every buffer for the lifetime of the program, resolves
// namespace names to files over an ordered load path, and lazily builds a
// size-specialized newline-offset cache per buffer for fast line lookups.
package sourcemgr

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lucent-lang/lucent/jit"
	"github.com/lucent-lang/lucent/lerr"
	"github.com/lucent-lang/lucent/loc"
	"github.com/lucent-lang/lucent/namespace"
	"github.com/lucent-lang/lucent/reader"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lucent.sourcemgr")

// DefaultSuffix is the on-disk file extension for Lucent source files.
// Namespace a.b.c resolves to <loadPath>/a/b/c.<DefaultSuffix>.
const DefaultSuffix = "lct"

// BufferID names an in-memory source buffer. IDs are 1-based, stable and
// monotonically increasing; 0 is reserved as "invalid".
type BufferID uint32

// SourceBuffer is a contiguous byte region together with the location it
// was imported from (unknown for root buffers) and a lazily built
// newline-offset cache.
type SourceBuffer struct {
	Content   []byte
	ImportLoc loc.Range

	// offsets holds one of []uint8/[]uint16/[]uint32/[]uint64 depending on
	// Content's size, built on first GetPointerForLineNumber call.
	offsets any
}

// SourceManager is the append-only registry of source buffers and the
// canonical namespace-name → buffer-id index. It is not safe for
// concurrent mutation: AddBuffer/ReadNamespace must not be called
// concurrently on the same instance (see spec.md §5).
type SourceManager struct {
	buffers   []SourceBuffer
	loadPaths []string
	nsIndex   map[string]BufferID
}

// New returns an empty SourceManager with no load paths configured.
func New() *SourceManager {
	return &SourceManager{nsIndex: make(map[string]BufferID)}
}

// AddBuffer registers content as a new buffer and returns its id. IDs
// strictly increase across calls and never equal zero.
func (sm *SourceManager) AddBuffer(content []byte, importLoc loc.Range) BufferID {
	sm.buffers = append(sm.buffers, SourceBuffer{Content: content, ImportLoc: importLoc})
	return BufferID(len(sm.buffers))
}

// IsValidID reports whether id names a buffer this manager holds.
func (sm *SourceManager) IsValidID(id BufferID) bool {
	return id != 0 && int(id) <= len(sm.buffers)
}

// GetBuffer returns the buffer for id. Precondition: IsValidID(id).
func (sm *SourceManager) GetBuffer(id BufferID) *SourceBuffer {
	return &sm.buffers[id-1]
}

// BufferCount returns the number of buffers registered so far.
func (sm *SourceManager) BufferCount() int {
	return len(sm.buffers)
}

// Buffers returns every currently valid buffer id, in allocation order.
func (sm *SourceManager) Buffers() []BufferID {
	ids := make([]BufferID, len(sm.buffers))
	for i := range sm.buffers {
		ids[i] = BufferID(i + 1)
	}
	return ids
}

// SetLoadPaths replaces any previously configured load path list.
func (sm *SourceManager) SetLoadPaths(paths []string) {
	sm.loadPaths = append([]string(nil), paths...)
}

// LoadPaths returns the currently configured load path list.
func (sm *SourceManager) LoadPaths() []string {
	return append([]string(nil), sm.loadPaths...)
}

// AddLoadPath appends dir to the end of the load path list, searched after
// every path already configured.
func (sm *SourceManager) AddLoadPath(dir string) {
	sm.loadPaths = append(sm.loadPaths, dir)
}

// RemoveLoadPath drops the first occurrence of dir from the load path
// list, if present.
func (sm *SourceManager) RemoveLoadPath(dir string) {
	for i, p := range sm.loadPaths {
		if p == dir {
			sm.loadPaths = append(sm.loadPaths[:i], sm.loadPaths[i+1:]...)
			return
		}
	}
}

// ConvertNamespaceToPath replaces every '.' in name with the platform path
// separator. It does not append an extension.
func ConvertNamespaceToPath(name string) string {
	return strings.ReplaceAll(name, ".", string(filepath.Separator))
}

// FindFileInLoadPath probes each configured load path in order, forming
// <dir>/<relativePath>.<DefaultSuffix>, and returns the content and full
// path of the first file it can read. Transient I/O errors on one root do
// not abort the search.
func (sm *SourceManager) FindFileInLoadPath(name string) (content []byte, fullPath string, ok bool) {
	relative := ConvertNamespaceToPath(name)

	for _, dir := range sm.loadPaths {
		candidate := filepath.Join(dir, relative+"."+DefaultSuffix)

		log.Debugf("trying to load namespace %q from %s", name, candidate)

		if !probablyReadable(candidate) {
			continue
		}

		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}

		return data, candidate, true
	}

	return nil, "", false
}

// ReadNamespace resolves name via the load path, registers its content as
// a new buffer, parses it with the reader, and constructs a
// *namespace.Namespace with the parsed forms already expanded in.
func (sm *SourceManager) ReadNamespace(name string, importLoc loc.Range, handle jit.Handle) (*namespace.Namespace, *lerr.Error) {
	log.Debugf("attempting to load namespace %q", name)

	content, fullPath, found := sm.FindFileInLoadPath(name)
	if !found {
		return nil, lerr.Newf(lerr.NSLoadError, importLoc, "couldn't find namespace '%s'", name)
	}

	id := sm.AddBuffer(content, importLoc)
	sm.nsIndex[name] = id

	buf := sm.GetBuffer(id)

	forms, err := reader.Read(buf.Content, name, fullPath, true)
	if err != nil {
		log.Debugf("couldn't read namespace %q: %s", name, err)
		return nil, err
	}

	ns := namespace.New(handle, name, fullPath, true)
	if err := ns.ExpandTree(forms); err != nil {
		log.Debugf("couldn't set the AST for namespace %q: %s", name, err)
		return nil, err
	}

	return ns, nil
}

// BufferIDFor returns the buffer id most recently registered for name, if
// any. Re-reading a namespace overwrites this mapping (latest wins).
func (sm *SourceManager) BufferIDFor(name string) (BufferID, bool) {
	id, ok := sm.nsIndex[name]
	return id, ok
}

// GetPointerForLineNumber returns the byte offset, within the named
// buffer's content, of the first character of the given 1-based line
// number. Line 0 is treated as line 1. Returns ok=false if lineNo is past
// the end of the buffer.
func (sm *SourceManager) GetPointerForLineNumber(id BufferID, lineNo int) (offset int, ok bool) {
	buf := sm.GetBuffer(id)

	if lineNo <= 1 {
		return 0, true
	}

	switch sz := len(buf.Content); {
	case sz <= 1<<8-1:
		return lineOffset(buf, lineNo, buildOffsetCache[uint8])
	case sz <= 1<<16-1:
		return lineOffset(buf, lineNo, buildOffsetCache[uint16])
	case sz <= 1<<32-1:
		return lineOffset(buf, lineNo, buildOffsetCache[uint32])
	default:
		return lineOffset(buf, lineNo, buildOffsetCache[uint64])
	}
}

type offsetInt interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func buildOffsetCache[T offsetInt](buf *SourceBuffer) []T {
	if cached, ok := buf.offsets.([]T); ok {
		return cached
	}

	offsets := make([]T, 0)
	for i, b := range buf.Content {
		if b == '\n' {
			offsets = append(offsets, T(i))
		}
	}
	buf.offsets = offsets
	return offsets
}

func lineOffset[T offsetInt](buf *SourceBuffer, lineNo int, build func(*SourceBuffer) []T) (int, bool) {
	offsets := build(buf)

	idx := lineNo - 2 // offsets[lineNo-2] is the \n ending line (lineNo-1)
	if idx < 0 {
		return 0, true
	}
	if idx >= len(offsets) {
		return 0, false
	}
	return int(offsets[idx]) + 1, true
}
