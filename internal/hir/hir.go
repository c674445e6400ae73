// Package hir defines the typed high-level intermediate representation
// that flows through the whole compilation pipeline, from the builder
// through codegen. One node set is shared across every stage; stages
// differ only in which variants they produce or expect as input:
// Lambda/App/Var appear before closure conversion, MkClosure/AppClosure/
// EnvRef appear after it.
package hir

import (
	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/ordermap"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
)

// Node is the common interface for every HIR expression. Trees are
// immutable: every transform in this pipeline builds a new tree rather
// than mutating nodes in place.
type Node interface {
	Type() *types.Monotype
	hirNode()
}

// base carries the monotype field every node has.
type base struct {
	Ty *types.Monotype
}

func (b base) Type() *types.Monotype { return b.Ty }

// LitVal holds the literal's discriminated payload.
type LitVal struct {
	Kind  types.LitKind
	Bool  bool
	Int   int64
	Float float64
}

// Lit is a literal node.
type Lit struct {
	base
	Val LitVal
}

func (*Lit) hirNode() {}

// NewLit builds a Lit node.
func NewLit(ty *types.Monotype, val LitVal) *Lit { return &Lit{base{ty}, val} }

// Var is a variable reference, by interned Symbol (every binder has
// exactly one bound name after the builder runs).
type Var struct {
	base
	Name sym.Symbol
}

func (*Var) hirNode() {}

func NewVar(ty *types.Monotype, name sym.Symbol) *Var { return &Var{base{ty}, name} }

// If is a conditional; test must unify with Bool, then/else/ty must all
// unify.
type If struct {
	base
	Test, Then, Else Node
}

func (*If) hirNode() {}

func NewIf(ty *types.Monotype, test, then, els Node) *If {
	return &If{base{ty}, test, then, els}
}

// Binding is a single-name let/letrec binding: exactly one bound name per
// binder.
type Binding struct {
	Ty         *types.Monotype
	Name       sym.Symbol
	Annotation *types.Monotype // nil if the source binder had none
	Val        Node
}

// Let is single-binder let; surface n-ary let has already been expanded
// by the builder into nested Lets.
type Let struct {
	base
	Binding Binding
	Body    Node
}

func (*Let) hirNode() {}

func NewLet(ty *types.Monotype, binding Binding, body Node) *Let {
	return &Let{base{ty}, binding, body}
}

// Letrec holds the full list of mutually recursive bindings; every name
// is in scope in every binding's Val and in Body.
type Letrec struct {
	base
	Bindings []Binding
	Body     Node
}

func (*Letrec) hirNode() {}

func NewLetrec(ty *types.Monotype, bindings []Binding, body Node) *Letrec {
	return &Letrec{base{ty}, bindings, body}
}

// Param is a single lambda parameter; surface n-ary lambda has already
// been expanded by the builder into nested Lambdas.
type Param struct {
	Ty         *types.Monotype
	Name       sym.Symbol
	Annotation *types.Monotype
}

// Lambda is a single-parameter function abstraction.
type Lambda struct {
	base
	Param Param
	Body  Node
}

func (*Lambda) hirNode() {}

func NewLambda(ty *types.Monotype, param Param, body Node) *Lambda {
	return &Lambda{base{ty}, param, body}
}

// App is single-argument application; curried multi-argument application
// is nested App nodes.
type App struct {
	base
	Func, Arg Node
}

func (*App) hirNode() {}

func NewApp(ty *types.Monotype, fn, arg Node) *App { return &App{base{ty}, fn, arg} }

// Binop is a binary operator application.
type Binop struct {
	base
	Op       ast.Op
	Lhs, Rhs Node
}

func (*Binop) hirNode() {}

func NewBinop(ty *types.Monotype, op ast.Op, lhs, rhs Node) *Binop {
	return &Binop{base{ty}, op, lhs, rhs}
}

// FreeVars is an order-preserving map from captured name to its
// monotype, used by MkClosure.
type FreeVars = ordermap.Map[sym.Symbol, *types.Monotype]

// MkClosure replaces a Lambda after closure conversion: it records the
// free variables the lambda captures, in insertion order, alongside the
// (already-converted) body.
type MkClosure struct {
	base
	Param    Param
	FreeVars *FreeVars
	Body     Node
}

func (*MkClosure) hirNode() {}

func NewMkClosure(ty *types.Monotype, param Param, fv *FreeVars, body Node) *MkClosure {
	return &MkClosure{base{ty}, param, fv, body}
}

// AppClosure replaces App after closure conversion; semantically
// identical, it exists so codegen can tell "call a closure value" apart
// from any surviving pre-conversion App (there should be none by the
// time codegen runs, but the distinction documents the invariant).
type AppClosure struct {
	base
	Func, Arg Node
}

func (*AppClosure) hirNode() {}

func NewAppClosure(ty *types.Monotype, fn, arg Node) *AppClosure {
	return &AppClosure{base{ty}, fn, arg}
}

// EnvRef denotes a read from the enclosing closure's captured
// environment, replacing a Var reference to a free variable during
// closure conversion.
type EnvRef struct {
	base
	Name sym.Symbol
}

func (*EnvRef) hirNode() {}

func NewEnvRef(ty *types.Monotype, name sym.Symbol) *EnvRef { return &EnvRef{base{ty}, name} }
