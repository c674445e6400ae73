package hir

import (
	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
)

// Builder lowers a surface ast.Expr to typed HIR. It expands n-ary
// let/lambda into nested single-binder forms and attaches a fresh
// TypeVar, from a single shared generator, to every node and binder. The
// builder cannot reject input; unknown variables are only detected
// later, at constraint collection.
type Builder struct {
	gen   *types.TypeVarGen
	table *sym.Table
}

// NewBuilder constructs a Builder sharing gen and table for the whole
// tree it will build.
func NewBuilder(gen *types.TypeVarGen, table *sym.Table) *Builder {
	return &Builder{gen: gen, table: table}
}

// Build lowers a surface expression to typed HIR.
func (b *Builder) Build(e ast.Expr) Node {
	switch e := e.(type) {
	case *ast.Lit:
		return NewLit(b.gen.Fresh(), LitVal{Kind: e.Kind, Bool: e.Bool, Int: e.Int, Float: e.Float})

	case *ast.Var:
		return NewVar(b.gen.Fresh(), b.table.Intern(e.Name))

	case *ast.Binop:
		return NewBinop(b.gen.Fresh(), e.Op, b.Build(e.Lhs), b.Build(e.Rhs))

	case *ast.If:
		return NewIf(b.gen.Fresh(), b.Build(e.Test), b.Build(e.Then), b.Build(e.Else))

	case *ast.Let:
		return b.buildLet(e.Bindings, e.Body)

	case *ast.Letrec:
		bindings := make([]Binding, len(e.Bindings))
		for i, sb := range e.Bindings {
			bindings[i] = Binding{
				Ty:         b.gen.Fresh(),
				Name:       b.table.Intern(sb.Name),
				Annotation: sb.Annotation,
				Val:        b.Build(sb.Value),
			}
		}
		return NewLetrec(b.gen.Fresh(), bindings, b.Build(e.Body))

	case *ast.Lambda:
		return b.buildLambda(e.Params, e.Body)

	case *ast.App:
		return NewApp(b.gen.Fresh(), b.Build(e.Func), b.Build(e.Arg))

	default:
		panic("hir: unknown ast.Expr variant")
	}
}

// buildLet expands `let x1=e1, ..., xn=en in body` right-associatively
// into `let x1=e1 in (let x2=e2 in ... in body)`; each outer binding does
// not see later bindings in the same surface let.
func (b *Builder) buildLet(bindings []ast.Binding, body ast.Expr) Node {
	if len(bindings) == 0 {
		return b.Build(body)
	}
	head := bindings[0]
	binding := Binding{
		Ty:         b.gen.Fresh(),
		Name:       b.table.Intern(head.Name),
		Annotation: head.Annotation,
		Val:        b.Build(head.Value),
	}
	var rest Node
	if len(bindings) == 1 {
		rest = b.Build(body)
	} else {
		rest = b.buildLet(bindings[1:], body)
	}
	return NewLet(b.gen.Fresh(), binding, rest)
}

// buildLambda expands `\x1, ..., xn -> body` into nested single-parameter
// lambdas: `\x1 -> \x2 -> ... -> body`.
func (b *Builder) buildLambda(params []ast.Param, body ast.Expr) Node {
	if len(params) == 0 {
		return b.Build(body)
	}
	head := params[0]
	param := Param{
		Ty:         b.gen.Fresh(),
		Name:       b.table.Intern(head.Name),
		Annotation: head.Annotation,
	}
	var rest Node
	if len(params) == 1 {
		rest = b.Build(body)
	} else {
		rest = b.buildLambda(params[1:], body)
	}
	return NewLambda(b.gen.Fresh(), param, rest)
}
