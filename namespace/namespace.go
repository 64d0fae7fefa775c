// Package namespace implements the compilation unit: a Namespace owns one
// parsed source file's AST together with the lexical environment stack
// built up while expanding it, and mediates every interaction the rest of
// the compiler has with that file's downstream JIT module.
//
// A *Namespace has Range and String methods shaped like an ast.Expression's,
// but ast.Expression is sealed by an unexported marker method that only
// types inside package ast can satisfy, so a *Namespace is not an
// ast.Expression.
package namespace

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lucent-lang/lucent/ast"
	"github.com/lucent-lang/lucent/env"
	"github.com/lucent-lang/lucent/jit"
	"github.com/lucent-lang/lucent/lerr"
	"github.com/lucent-lang/lucent/loc"
	"github.com/lucent-lang/lucent/options"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lucent.namespace")

// SemanticAnalysis is the hook a namespace runs its forms through once
// expansion passes the Parse phase. It borrows the namespace, its root
// environment, and the forms to analyze, and reports the first error it
// hits, if any. The default is a pass-through: the semantic analyzer
// itself is out of scope here (spec.md §1) and is left as a placeholder
// for a downstream collaborator to install via SetSemanticAnalysis.
type SemanticAnalysis func(ns *Namespace, root *env.Environment[ast.Expression], forms ast.Ast) *lerr.Error

func passThroughAnalysis(*Namespace, *env.Environment[ast.Expression], ast.Ast) *lerr.Error {
	return nil
}

// Namespace is a compilation unit: one namespace name, the forms read for
// it, and the environment stack built while expanding those forms.
type Namespace struct {
	handle jit.Handle

	Name     string
	Filename string
	HasFile  bool
	RunID    uuid.UUID

	tree     ast.Ast
	locRange loc.Range

	root *env.Environment[ast.Expression]
	top  *env.Environment[ast.Expression]

	analyze SemanticAnalysis
}

// New constructs an empty Namespace bound to handle. name is the dotted
// namespace name ("a.b.c"); filename/hasFile describe the backing file, if
// any (a root buffer with no file passes hasFile=false). The namespace's
// semantic-analysis hook defaults to a no-op pass-through; install one
// with SetSemanticAnalysis.
func New(handle jit.Handle, name, filename string, hasFile bool) *Namespace {
	root := env.New[ast.Expression](nil)
	return &Namespace{
		handle:   handle,
		Name:     name,
		Filename: filename,
		HasFile:  hasFile,
		root:     root,
		top:      root,
		analyze:  passThroughAnalysis,
	}
}

// SetSemanticAnalysis installs the hook ExpandTree runs once expansion
// passes the Parse phase. Passing nil restores the default pass-through.
func (ns *Namespace) SetSemanticAnalysis(fn SemanticAnalysis) {
	if fn == nil {
		fn = passThroughAnalysis
	}
	ns.analyze = fn
}

func (ns *Namespace) Range() loc.Range { return ns.locRange }
func (ns *Namespace) isExpression()    {}
func (ns *Namespace) String() string {
	return fmt.Sprintf("<Namespace %s>", ns.Name)
}

// Options returns the options the namespace's jit.Handle is currently
// configured with.
func (ns *Namespace) Options() options.Options {
	return ns.handle.Options()
}

// Tree returns the namespace's top-level forms, accumulated across every
// ExpandTree call. The returned slice must not be mutated by the caller.
func (ns *Namespace) Tree() ast.Ast {
	return ns.tree
}

// RootEnv returns the namespace's root lexical environment.
func (ns *Namespace) RootEnv() *env.Environment[ast.Expression] {
	return ns.root
}

// createEnv pushes a fresh child scope onto ns's environment stack and
// returns it. Each call's result must eventually be matched by popEnv once
// that lexical scope is done being expanded.
func (ns *Namespace) createEnv() *env.Environment[ast.Expression] {
	child := env.New[ast.Expression](ns.top)
	ns.top = child
	return child
}

// popEnv discards the current innermost scope, returning to its parent.
// At the root scope it does nothing.
func (ns *Namespace) popEnv() {
	if parent := ns.top.Parent(); parent != nil {
		ns.top = parent
	}
}

// define binds name to val in ns's current innermost scope.
func (ns *Namespace) define(name string, val ast.Expression) {
	ns.top.Insert(name, val)
}

// Lookup resolves name against ns's current innermost scope, walking
// outward to the root.
func (ns *Namespace) Lookup(name string) (ast.Expression, bool) {
	return ns.top.Lookup(name)
}

// ExpandTree appends forms to ns's tree and, if the namespace's options
// call for it, runs ns's semantic-analysis hook over them. Expansion stops
// at Parse: a namespace read purely for its syntax tree (e.g. for an
// editor integration) never touches the environment at all, and the
// default hook is a pass-through — the semantic analyzer itself is a
// placeholder collaborators install via SetSemanticAnalysis (spec.md §1).
func (ns *Namespace) ExpandTree(forms ast.Ast) *lerr.Error {
	ns.tree = append(ns.tree, forms...)

	if len(ns.tree) > 0 {
		ns.locRange = loc.Range{Start: ns.tree[0].Range().Start, End: ns.tree[len(ns.tree)-1].Range().End}
	}

	phase := ns.Options().CompilationPhase
	log.Debugf("expanding namespace %q up to phase %s", ns.Name, phase)

	if phase <= options.Parse {
		return nil
	}

	if ns.RunID == uuid.Nil {
		ns.RunID = uuid.New()
	}

	return ns.analyze(ns, ns.root, forms)
}
