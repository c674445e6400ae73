// Package ast defines the surface syntax tree the core consumes from the
// parser. The parser, lexer, and grammar themselves are an out-of-scope
// collaborator; this package only fixes the shapes the core treats as
// immutable input. Surface let/lambda are n-ary; binders may carry an
// optional type annotation already resolved to a *types.Monotype
// (source type annotations contain no type variables).
package ast

import "github.com/simpl-lang/simplc/internal/types"

// Op enumerates the fixed set of binary operators. Arithmetic
// operators are suffixed on floats in source (+. -. *. /.) to disambiguate
// from the integer forms; that distinction is already resolved to a
// single Op value by the time the parser hands the tree to the core.
type Op int

const (
	IntAdd Op = iota
	IntSub
	IntMul
	IntDiv
	IntLt
	IntLeq
	IntGt
	IntGeq
	FloatAdd
	FloatSub
	FloatMul
	FloatDiv
	FloatLt
	FloatLeq
	FloatGt
	FloatGeq
	Eq
	Neq
)

// Expr is the surface expression interface. The core treats every Expr
// as immutable.
type Expr interface {
	exprNode()
}

// Lit is a literal of one of the three primitive kinds.
type Lit struct {
	Kind  types.LitKind
	Bool  bool
	Int   int64
	Float float64
}

func (*Lit) exprNode() {}

// Var is a variable reference, by source name (not yet a Symbol: the
// builder is the first stage that interns names).
type Var struct {
	Name string
}

func (*Var) exprNode() {}

// Binop is a binary operator application.
type Binop struct {
	Op       Op
	Lhs, Rhs Expr
}

func (*Binop) exprNode() {}

// If is a conditional expression.
type If struct {
	Test, Then, Else Expr
}

func (*If) exprNode() {}

// Binding is one (name, optional annotation, value) triple as it appears
// in source let/letrec binding lists.
type Binding struct {
	Name       string
	Annotation *types.Monotype // nil if absent
	Value      Expr
}

// Let is surface, possibly n-ary, let: `let x1=e1, ..., xn=en in body`.
// Each binding does not see later bindings in the same let; the builder
// expands this into nested single-binder lets.
type Let struct {
	Bindings []Binding
	Body     Expr
}

func (*Let) exprNode() {}

// Letrec is mutually-recursive let: every bound name is in scope in
// every binding's value and in the body.
type Letrec struct {
	Bindings []Binding
	Body     Expr
}

func (*Letrec) exprNode() {}

// Param is one (name, optional annotation) pair in a surface lambda's
// parameter list.
type Param struct {
	Name       string
	Annotation *types.Monotype
}

// Lambda is surface, possibly n-ary, lambda: `\x1, ..., xn -> body`. The
// builder expands this into nested single-parameter lambdas.
type Lambda struct {
	Params []Param
	Body   Expr
}

func (*Lambda) exprNode() {}

// App is application of func to exactly one argument. Curried
// application of multiple arguments is written as nested App nodes by
// the parser.
type App struct {
	Func, Arg Expr
}

func (*App) exprNode() {}
