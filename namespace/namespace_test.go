package namespace_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lucent-lang/lucent/ast"
	"github.com/lucent-lang/lucent/env"
	"github.com/lucent-lang/lucent/jit"
	"github.com/lucent-lang/lucent/lerr"
	"github.com/lucent-lang/lucent/namespace"
	"github.com/lucent-lang/lucent/options"
	"github.com/lucent-lang/lucent/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTreeStopsAtParsePhase(t *testing.T) {
	opts := options.Default()
	opts.CompilationPhase = options.Parse
	handle := jit.NewNullHandle(opts)

	forms, rerr := reader.Read([]byte("(def x 1)"), "app.main", "", false)
	require.Nil(t, rerr)

	ns := namespace.New(handle, "app.main", "", false)
	err := ns.ExpandTree(forms)
	require.Nil(t, err)

	assert.Equal(t, uuid.Nil, ns.RunID, "RunID must stay unset until expansion reaches Analysis")
	_, ok := ns.Lookup("x")
	assert.False(t, ok, "Parse phase must not bind top-level definitions")
}

func TestExpandTreeDefaultAnalysisIsPassThrough(t *testing.T) {
	opts := options.Default()
	opts.CompilationPhase = options.Analysis
	handle := jit.NewNullHandle(opts)

	forms, rerr := reader.Read([]byte("(def x 1)"), "app.main", "", false)
	require.Nil(t, rerr)

	ns := namespace.New(handle, "app.main", "", false)
	err := ns.ExpandTree(forms)
	require.Nil(t, err)

	assert.NotEqual(t, uuid.Nil, ns.RunID, "RunID is minted once expansion reaches Analysis")

	_, ok := ns.Lookup("x")
	assert.False(t, ok, "the default semantic-analysis hook must not bind anything")
}

func TestExpandTreeRunsInstalledSemanticAnalysis(t *testing.T) {
	opts := options.Default()
	opts.CompilationPhase = options.Analysis
	handle := jit.NewNullHandle(opts)

	forms, rerr := reader.Read([]byte("(def x 1)"), "app.main", "", false)
	require.Nil(t, rerr)

	ns := namespace.New(handle, "app.main", "", false)

	var sawForms ast.Ast
	ns.SetSemanticAnalysis(func(got *namespace.Namespace, root *env.Environment[ast.Expression], forms ast.Ast) *lerr.Error {
		sawForms = forms
		root.Insert("x", forms[0])
		return nil
	})

	err := ns.ExpandTree(forms)
	require.Nil(t, err)

	assert.Equal(t, ast.Ast(forms), sawForms)

	bound, ok := ns.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, forms[0], bound)
}

func TestSetSemanticAnalysisNilRestoresPassThrough(t *testing.T) {
	opts := options.Default()
	opts.CompilationPhase = options.Analysis
	handle := jit.NewNullHandle(opts)

	forms, rerr := reader.Read([]byte("(def x 1)"), "app.main", "", false)
	require.Nil(t, rerr)

	ns := namespace.New(handle, "app.main", "", false)
	ns.SetSemanticAnalysis(func(_ *namespace.Namespace, root *env.Environment[ast.Expression], forms ast.Ast) *lerr.Error {
		root.Insert("x", forms[0])
		return nil
	})
	ns.SetSemanticAnalysis(nil)

	err := ns.ExpandTree(forms)
	require.Nil(t, err)

	_, ok := ns.Lookup("x")
	assert.False(t, ok, "passing nil must restore the default pass-through hook")
}

func TestNamespaceIsAnExpression(t *testing.T) {
	var _ ast.Expression = (*namespace.Namespace)(nil)
}

func TestNamespaceOptionsPassthrough(t *testing.T) {
	opts := options.Default()
	opts.Verbose = true
	handle := jit.NewNullHandle(opts)

	ns := namespace.New(handle, "app.main", "", false)
	assert.True(t, ns.Options().Verbose)
}

func TestNamespaceRangeSpansForms(t *testing.T) {
	opts := options.Default()
	handle := jit.NewNullHandle(opts)

	forms, rerr := reader.Read([]byte("(a 1) (b 2)"), "app.main", "", false)
	require.Nil(t, rerr)

	ns := namespace.New(handle, "app.main", "", false)
	require.Nil(t, ns.ExpandTree(forms))

	r := ns.Range()
	assert.Equal(t, forms[0].Range().Start, r.Start)
	assert.Equal(t, forms[len(forms)-1].Range().End, r.End)
}

func TestRootEnvVisibleFromLookup(t *testing.T) {
	opts := options.Default()
	handle := jit.NewNullHandle(opts)
	ns := namespace.New(handle, "app.main", "", false)

	root := ns.RootEnv()
	root.Insert("outer", &ast.Number{Value: "1"})

	_, ok := ns.Lookup("outer")
	assert.True(t, ok, "lookups before any nested scope resolve against the root env")
}
