package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/types"
)

func intLit(v int64) *ast.Lit {
	return &ast.Lit{Kind: types.LitInt, Int: v}
}

func TestRun_Arithmetic(t *testing.T) {
	// 2 + 3 * 4
	e := &ast.Binop{
		Op:  ast.IntAdd,
		Lhs: intLit(2),
		Rhs: &ast.Binop{Op: ast.IntMul, Lhs: intLit(3), Rhs: intLit(4)},
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
	assert.Contains(t, result.PhaseTimings, "codegen") // timings recorded, even if sub-millisecond
}

func TestRun_LetBinding(t *testing.T) {
	// let x = 5 in x * 2
	e := &ast.Let{
		Bindings: []ast.Binding{{Name: "x", Value: intLit(5)}},
		Body:     &ast.Binop{Op: ast.IntMul, Lhs: &ast.Var{Name: "x"}, Rhs: intLit(2)},
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
}

func TestRun_ClosureOverFreeVariable(t *testing.T) {
	// let y = 10 in (\x -> x + y)(5)
	lambda := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   &ast.Binop{Op: ast.IntAdd, Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Var{Name: "y"}},
	}
	e := &ast.Let{
		Bindings: []ast.Binding{{Name: "y", Value: intLit(10)}},
		Body:     &ast.App{Func: lambda, Arg: intLit(5)},
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())

	mk := findMkClosure(result.Artifacts.Closed)
	require.NotNil(t, mk, "the lambda must have become a MkClosure")
	assert.Equal(t, 1, mk.FreeVars.Len(), "the closure captures exactly y")
}

func findMkClosure(n hir.Node) *hir.MkClosure {
	switch n := n.(type) {
	case *hir.MkClosure:
		return n
	case *hir.Let:
		if mk := findMkClosure(n.Binding.Val); mk != nil {
			return mk
		}
		return findMkClosure(n.Body)
	case *hir.Letrec:
		for _, b := range n.Bindings {
			if mk := findMkClosure(b.Val); mk != nil {
				return mk
			}
		}
		return findMkClosure(n.Body)
	case *hir.AppClosure:
		if mk := findMkClosure(n.Func); mk != nil {
			return mk
		}
		return findMkClosure(n.Arg)
	case *hir.If:
		for _, c := range []hir.Node{n.Test, n.Then, n.Else} {
			if mk := findMkClosure(c); mk != nil {
				return mk
			}
		}
		return nil
	case *hir.Binop:
		if mk := findMkClosure(n.Lhs); mk != nil {
			return mk
		}
		return findMkClosure(n.Rhs)
	default:
		return nil
	}
}

func TestRun_Letrec_SelfRecursiveClosure(t *testing.T) {
	// letrec countdown = \n -> if n <= 0 then 0 else countdown(n - 1) in countdown(3)
	countdown := &ast.Lambda{
		Params: []ast.Param{{Name: "n"}},
		Body: &ast.If{
			Test: &ast.Binop{Op: ast.IntLeq, Lhs: &ast.Var{Name: "n"}, Rhs: intLit(0)},
			Then: intLit(0),
			Else: &ast.App{
				Func: &ast.Var{Name: "countdown"},
				Arg:  &ast.Binop{Op: ast.IntSub, Lhs: &ast.Var{Name: "n"}, Rhs: intLit(1)},
			},
		},
	}
	e := &ast.Letrec{
		Bindings: []ast.Binding{{Name: "countdown", Value: countdown}},
		Body:     &ast.App{Func: &ast.Var{Name: "countdown"}, Arg: intLit(3)},
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
}

func TestRun_IdentityLambda_DomainEqualsCodomain(t *testing.T) {
	// \x -> x : a -> a
	e := &ast.Lambda{Params: []ast.Param{{Name: "x"}}, Body: &ast.Var{Name: "x"}}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, types.KFn, result.Type.Kind())
	assert.True(t, result.Type.Domain().Equals(result.Type.Codomain()))
}

func TestRun_SameSourceTwice_SameInferredType(t *testing.T) {
	mk := func() ast.Expr {
		return &ast.Let{
			Bindings: []ast.Binding{{Name: "x", Value: intLit(5)}},
			Body: &ast.App{
				Func: &ast.Lambda{
					Params: []ast.Param{{Name: "ignored"}},
					Body:   &ast.Var{Name: "x"},
				},
				Arg: intLit(100),
			},
		}
	}

	first, err := Run(mk(), DefaultConfig())
	require.NoError(t, err)
	second, err := Run(mk(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, first.Type.String(), second.Type.String())
}

func TestRun_SelfApplication_OccursCheck(t *testing.T) {
	// \x -> x x
	e := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   &ast.App{Func: &ast.Var{Name: "x"}, Arg: &ast.Var{Name: "x"}},
	}

	_, err := Run(e, DefaultConfig())
	require.Error(t, err)
	var occ cerrors.OccursCheck
	assert.ErrorAs(t, err, &occ)
}

func TestRun_TypeMismatch(t *testing.T) {
	e := &ast.Binop{Op: ast.IntAdd, Lhs: &ast.Lit{Kind: types.LitBool, Bool: true}, Rhs: intLit(1)}

	_, err := Run(e, DefaultConfig())
	require.Error(t, err)
}

func TestRun_UnboundVariable(t *testing.T) {
	e := &ast.Var{Name: "nowhere"}

	_, err := Run(e, DefaultConfig())
	require.Error(t, err)
}

func TestRun_WordSize32(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordSize = 32

	result, err := Run(intLit(1), cfg)
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
}

func appE(f, a ast.Expr) *ast.App { return &ast.App{Func: f, Arg: a} }

func TestRun_PrimitivesCurriedAndUnary(t *testing.T) {
	// letrec countdown = \x -> if is_zero x then 0 else countdown (sub x 1)
	// in countdown 3
	countdown := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body: &ast.If{
			Test: appE(&ast.Var{Name: "is_zero"}, &ast.Var{Name: "x"}),
			Then: intLit(0),
			Else: appE(&ast.Var{Name: "countdown"},
				appE(appE(&ast.Var{Name: "sub"}, &ast.Var{Name: "x"}), intLit(1))),
		},
	}
	e := &ast.Letrec{
		Bindings: []ast.Binding{{Name: "countdown", Value: countdown}},
		Body:     appE(&ast.Var{Name: "countdown"}, intLit(3)),
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
}

func TestRun_Compose(t *testing.T) {
	// let plus2 = \x -> add x 2, mul3 = \x -> mul x 3,
	//     compose = \f, g, x -> f (g x), myFn = compose mul3 plus2
	// in myFn 5
	plus2 := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   appE(appE(&ast.Var{Name: "add"}, &ast.Var{Name: "x"}), intLit(2)),
	}
	mul3 := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   appE(appE(&ast.Var{Name: "mul"}, &ast.Var{Name: "x"}), intLit(3)),
	}
	compose := &ast.Lambda{
		Params: []ast.Param{{Name: "f"}, {Name: "g"}, {Name: "x"}},
		Body:   appE(&ast.Var{Name: "f"}, appE(&ast.Var{Name: "g"}, &ast.Var{Name: "x"})),
	}
	e := &ast.Let{
		Bindings: []ast.Binding{
			{Name: "plus2", Value: plus2},
			{Name: "mul3", Value: mul3},
			{Name: "compose", Value: compose},
			{Name: "myFn", Value: appE(appE(&ast.Var{Name: "compose"}, &ast.Var{Name: "mul3"}), &ast.Var{Name: "plus2"})},
		},
		Body: appE(&ast.Var{Name: "myFn"}, intLit(5)),
	}

	result, err := Run(e, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, types.KInt, result.Type.Kind())
}
