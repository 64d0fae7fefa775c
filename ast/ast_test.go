package ast_test

import (
	"testing"

	"github.com/lucent-lang/lucent/ast"
	"github.com/lucent-lang/lucent/loc"
	"github.com/stretchr/testify/assert"
)

func TestNewSymbolWithoutSlash(t *testing.T) {
	s := ast.NewSymbol(loc.Range{}, "foo", "a.b.c")
	assert.Equal(t, "a.b.c", s.NSPart)
	assert.Equal(t, "foo", s.NamePart)
}

func TestNewSymbolWithSlash(t *testing.T) {
	s := ast.NewSymbol(loc.Range{}, "other.ns/foo", "a.b.c")
	assert.Equal(t, "other.ns", s.NSPart)
	assert.Equal(t, "foo", s.NamePart)
}

func TestStringStringTruncates(t *testing.T) {
	s := &ast.String{Value: "0123456789ABCDEF"}
	assert.Equal(t, `<String "0123456789">`, s.String())
}

func TestListAppendAndString(t *testing.T) {
	list := ast.NewList(loc.Range{})
	list.Append(&ast.Number{Value: "1"})
	list.Append(&ast.Number{Value: "2"})

	assert.Len(t, list.Elements, 2)
	assert.Equal(t, "<List <Number 1>, <Number 2>>", list.String())
}

func TestEmptyListString(t *testing.T) {
	list := ast.NewList(loc.Range{})
	assert.Equal(t, "<List ->", list.String())
}

// Every concrete expression type must be assignable to the sealed
// Expression interface; this is a compile-time check more than a runtime
// one, but running it keeps the list honest as the variant grows.
func TestExpressionVariants(t *testing.T) {
	var exprs = []ast.Expression{
		&ast.Symbol{},
		&ast.Number{},
		&ast.String{},
		&ast.Keyword{},
		ast.NewList(loc.Range{}),
		&ast.Error{},
	}
	assert.Len(t, exprs, 6)
}
