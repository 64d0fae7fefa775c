// Package ast defines Lucent's tagged-variant expression tree. Every
// concrete expression type owns its children outright (no sharing) and
// carries a loc.Range pinpointing where it came from.
package ast

import (
	"fmt"
	"strings"

	"github.com/lucent-lang/lucent/loc"
)

// Expression is the sealed interface every AST node implements. The
// unexported marker keeps the variant closed to this package: Symbol,
// Number, String, Keyword, List and Error are the only cases, matching the
// reader's grammar. Because the marker is unexported, no type outside this
// package satisfies the interface; in particular *namespace.Namespace is
// not an Expression.
type Expression interface {
	Range() loc.Range
	String() string
	isExpression()
}

// Ast is an ordered, append-only (from the namespace's point of view)
// sequence of top-level forms.
type Ast []Expression

// Symbol represents a (possibly namespace-qualified) identifier.
type Symbol struct {
	LocRange loc.Range
	NSPart   string
	NamePart string
}

func (s *Symbol) Range() loc.Range { return s.LocRange }
func (s *Symbol) isExpression()    {}
func (s *Symbol) String() string {
	return fmt.Sprintf("<Symbol %s/%s>", s.NSPart, s.NamePart)
}

// NewSymbol splits name on its first '/' into a namespace part and a name
// part. A symbol without '/' inherits currentNS as its namespace part.
func NewSymbol(at loc.Range, name, currentNS string) *Symbol {
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		return &Symbol{LocRange: at, NSPart: name[:idx], NamePart: name[idx+1:]}
	}
	return &Symbol{LocRange: at, NSPart: currentNS, NamePart: name}
}

// Number is a textual numeric literal. Parsing to an actual numeric type is
// left to downstream consumers; the reader only validates the lexical
// shape.
type Number struct {
	LocRange loc.Range
	Value    string
	Negative bool
	Float    bool
}

func (n *Number) Range() loc.Range { return n.LocRange }
func (n *Number) isExpression()    {}
func (n *Number) String() string {
	sign := ""
	if n.Negative {
		sign = "-"
	}
	return fmt.Sprintf("<Number %s%s>", sign, n.Value)
}

// String is a string literal.
type String struct {
	LocRange loc.Range
	Value    string
}

func (s *String) Range() loc.Range { return s.LocRange }
func (s *String) isExpression()    {}
func (s *String) String() string {
	const truncate = 10
	v := s.Value
	if len(v) > truncate {
		v = v[:truncate]
	}
	return fmt.Sprintf("<String %q>", v)
}

// Keyword is a `:name` literal.
type Keyword struct {
	LocRange loc.Range
	Name     string
}

func (k *Keyword) Range() loc.Range { return k.LocRange }
func (k *Keyword) isExpression()    {}
func (k *Keyword) String() string {
	return fmt.Sprintf("<Keyword %s>", k.Name)
}

// List is an ordered sequence of owned child expressions.
type List struct {
	LocRange loc.Range
	Elements Ast
}

func (l *List) Range() loc.Range { return l.LocRange }
func (l *List) isExpression()    {}
func (l *List) String() string {
	if len(l.Elements) == 0 {
		return "<List ->"
	}
	var sb strings.Builder
	for i, e := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	return fmt.Sprintf("<List %s>", sb.String())
}

// Append adds n as the next child of l.
func (l *List) Append(n Expression) {
	l.Elements = append(l.Elements, n)
}

// NewList returns an empty list anchored at the given location, ready for
// Append calls.
func NewList(at loc.Range) *List {
	return &List{LocRange: at}
}

// Error represents a reader/semantic failure reified as an AST node, so a
// partially-read tree can carry diagnostics inline where that's more
// convenient than threading a Go error back through a caller.
type Error struct {
	LocRange loc.Range
	Tag      *Keyword
	Msg      string
}

func (e *Error) Range() loc.Range { return e.LocRange }
func (e *Error) isExpression()    {}
func (e *Error) String() string {
	return fmt.Sprintf("<Error %s>", e.Msg)
}
