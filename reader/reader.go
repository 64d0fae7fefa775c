// Package reader implements Lucent's hand-written LL(2) recursive-descent
// parser: bytes in, an ast.Ast or a *lerr.Error out. It never backtracks
// beyond a one-byte lookahead and is not safe for concurrent use on a
// single Reader.
package reader

import (
	"strings"

	"github.com/lucent-lang/lucent/ast"
	"github.com/lucent-lang/lucent/lerr"
	"github.com/lucent-lang/lucent/loc"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lucent.reader")

// Reader holds the cursor over one source buffer. Create one with New (or
// use the Read convenience function) per parse; a Reader is single-pass and
// must not be reused once Read has returned.
type Reader struct {
	ns       string
	filename string
	hasFile  bool

	buf string
	pos int // index of the next unread byte

	line, col uint16
}

// New prepares a Reader over buf. filename is only meaningful when
// hasFilename is true (a root buffer with no backing file passes false).
func New(buf []byte, ns string, filename string, hasFilename bool) *Reader {
	return &Reader{
		buf:      string(buf),
		ns:       ns,
		filename: filename,
		hasFile:  hasFilename,
		line:     1,
		col:      1,
	}
}

// Read parses buf as a standalone operation.
func Read(buf []byte, ns string, filename string, hasFilename bool) (ast.Ast, *lerr.Error) {
	return New(buf, ns, filename, hasFilename).Read()
}

// here returns the location of the next unread byte (or the end-of-buffer
// location once exhausted).
func (r *Reader) here() loc.Location {
	return loc.Location{
		NS: r.ns, Filename: r.filename, HasFile: r.hasFile,
		Offset: r.pos, Line: r.line, Col: r.col, Known: true,
	}
}

// current returns the byte the cursor sits on, without consuming it.
func (r *Reader) current() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos], true
}

// peek looks n bytes ahead of the cursor (n=1 is the byte right after
// current) without consuming anything. This is the reader's lookahead;
// the grammar in spec.md never needs more than n=2.
func (r *Reader) peek(n int) (byte, bool) {
	idx := r.pos + n
	if idx < 0 || idx >= len(r.buf) {
		return 0, false
	}
	return r.buf[idx], true
}

// advance consumes the current byte and returns the location it occupied.
// Calling advance past the end of the buffer is a no-op that returns the
// end-of-buffer location.
func (r *Reader) advance() loc.Location {
	at := r.here()
	if r.pos < len(r.buf) {
		b := r.buf[r.pos]
		r.pos++
		if b == '\n' {
			r.line++
			r.col = 1
		} else {
			r.col++
		}
	}
	return at
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// isIdentChar reports whether b is a valid symbol/keyword identifier byte:
// anything that isn't whitespace, a parenthesis or a control character.
func isIdentChar(b byte) bool {
	return !isWhitespace(b) && b != '(' && b != ')' && !isControl(b)
}

func (r *Reader) skipWhitespace() {
	for {
		b, ok := r.current()
		if !ok || !isWhitespace(b) {
			return
		}
		r.advance()
	}
}

// Read parses the reader's entire buffer into a sequence of top-level
// forms, stopping at the first lexical error.
func (r *Reader) Read() (ast.Ast, *lerr.Error) {
	var forms ast.Ast
	for {
		r.skipWhitespace()
		if _, ok := r.current(); !ok {
			break
		}
		expr, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		forms = append(forms, expr)
	}
	return forms, nil
}

func (r *Reader) readExpr() (ast.Expression, *lerr.Error) {
	r.skipWhitespace()
	b, ok := r.current()
	if !ok {
		return nil, nil
	}

	switch {
	case b == '(':
		return r.readList()
	case b == '"':
		return r.readString()
	case b == ':':
		return r.readKeyword()
	case isDigit(b):
		return r.readNumber()
	case b == '-':
		if nb, ok := r.peek(1); ok && isDigit(nb) {
			return r.readNumber()
		}
		return r.readSymbol()
	default:
		return r.readSymbol()
	}
}

// readList reads `(` expr* `)`. Reaching end-of-buffer before the closing
// paren yields EOFWhileScanningAList anchored at the opening paren.
func (r *Reader) readList() (ast.Expression, *lerr.Error) {
	log.Debugf("reading a list at %s", r.here())
	start := r.here()
	r.advance() // consume '('

	list := ast.NewList(loc.NewRange(start))

	for {
		r.skipWhitespace()
		b, ok := r.current()
		if !ok {
			list.LocRange.End = r.here()
			return nil, lerr.New(lerr.EOFWhileScanningAList, list.LocRange)
		}

		if b == ')' {
			list.LocRange.End = r.advance()
			return list, nil
		}

		child, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		if child == nil {
			list.LocRange.End = r.here()
			return nil, lerr.New(lerr.EOFWhileScanningAList, list.LocRange)
		}
		list.Append(child)
	}
}

// readNumber reads an optional '-', a mandatory digit run, and an optional
// single '.' followed by a mandatory digit run.
func (r *Reader) readNumber() (ast.Expression, *lerr.Error) {
	log.Debugf("reading a number at %s", r.here())
	start := r.here()
	end := start

	neg := false
	if b, ok := r.current(); ok && b == '-' {
		neg = true
		end = r.advance()
	}

	if b, ok := r.current(); !ok || !isDigit(b) {
		return nil, lerr.New(lerr.InvalidDigitForNumber, loc.NewRange(r.here()))
	}

	var sb strings.Builder
	for {
		b, ok := r.current()
		if !ok || !isDigit(b) {
			break
		}
		sb.WriteByte(b)
		end = r.advance()
	}

	isFloat := false
	if b, ok := r.current(); ok && b == '.' {
		isFloat = true
		sb.WriteByte('.')
		end = r.advance()

		fracDigits := 0
		for {
			b2, ok2 := r.current()
			if !ok2 || !isDigit(b2) {
				break
			}
			sb.WriteByte(b2)
			end = r.advance()
			fracDigits++
		}

		if fracDigits == 0 {
			return nil, lerr.New(lerr.InvalidDigitForNumber, loc.NewRange(r.here()))
		}

		if b3, ok3 := r.current(); ok3 && b3 == '.' {
			return nil, lerr.New(lerr.TwoFloatPoints, loc.NewRange(r.here()))
		}
	}

	return &ast.Number{
		LocRange: loc.Range{Start: start, End: end},
		Value:    sb.String(),
		Negative: neg,
		Float:    isFloat,
	}, nil
}

// readSymbol reads a run of identifier characters, splits it on the first
// '/' into a namespace part and a name part, and rejects more than one '/'
// or a '/' at either end.
func (r *Reader) readSymbol() (ast.Expression, *lerr.Error) {
	log.Debugf("reading a symbol at %s", r.here())
	start := r.here()
	end := start

	var sb strings.Builder
	for {
		b, ok := r.current()
		if !ok || !isIdentChar(b) {
			break
		}
		sb.WriteByte(b)
		end = r.advance()
	}

	if sb.Len() == 0 {
		msg := ""
		if b, ok := r.current(); ok && b == ')' {
			msg = "an extra ')' is detected"
		}
		errAt := r.here()
		r.advance()
		if msg != "" {
			return nil, lerr.Newf(lerr.InvalidCharacterForSymbol, loc.NewRange(errAt), "%s", msg)
		}
		return nil, lerr.New(lerr.InvalidCharacterForSymbol, loc.NewRange(errAt))
	}

	name := sb.String()
	slashes := strings.Count(name, "/")
	if slashes > 1 || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return nil, lerr.New(lerr.InvalidCharacterForSymbol, loc.Range{Start: start, End: end})
	}

	return ast.NewSymbol(loc.Range{Start: start, End: end}, name, r.ns), nil
}

// readString reads a `"..."` literal with \", \\, \n, \t escapes. An
// unterminated string yields EOFWhileScanningAString.
func (r *Reader) readString() (ast.Expression, *lerr.Error) {
	log.Debugf("reading a string at %s", r.here())
	start := r.here()
	r.advance() // consume opening quote

	var sb strings.Builder
	for {
		b, ok := r.current()
		if !ok {
			return nil, lerr.New(lerr.EOFWhileScanningAString, loc.NewRange(start))
		}

		if b == '"' {
			end := r.advance()
			return &ast.String{LocRange: loc.Range{Start: start, End: end}, Value: sb.String()}, nil
		}

		if b == '\\' {
			r.advance()
			nb, ok := r.current()
			if !ok {
				return nil, lerr.New(lerr.EOFWhileScanningAString, loc.NewRange(start))
			}
			switch nb {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteByte(nb)
			default:
				sb.WriteByte(nb)
			}
			r.advance()
			continue
		}

		sb.WriteByte(b)
		r.advance()
	}
}

// readKeyword reads a `:name` literal: a colon followed by one or more
// identifier characters.
func (r *Reader) readKeyword() (ast.Expression, *lerr.Error) {
	log.Debugf("reading a keyword at %s", r.here())
	start := r.here()
	r.advance() // consume ':'

	end := start
	var sb strings.Builder
	for {
		b, ok := r.current()
		if !ok || !isIdentChar(b) {
			break
		}
		sb.WriteByte(b)
		end = r.advance()
	}

	if sb.Len() == 0 {
		return nil, lerr.New(lerr.InvalidCharacterForSymbol, loc.NewRange(r.here()))
	}

	return &ast.Keyword{LocRange: loc.Range{Start: start, End: end}, Name: sb.String()}, nil
}
