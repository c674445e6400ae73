// Package constraint implements the constraint collector: it walks a
// typed HIR tree, emitting equality constraints between types and
// threading the type environment through binding sites.
package constraint

import (
	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/types"
)

// Constraint is an ordered pair (t, u) asserting t ≡ u.
type Constraint struct {
	T, U *types.Monotype
}

// Collect walks n under env, returning an ordered list of constraints, or
// cerrors.UnboundVariable if some Var is not bound.
func Collect(n hir.Node, env *types.Env) ([]Constraint, error) {
	var cons []Constraint
	if err := collect(n, env, &cons); err != nil {
		return nil, err
	}
	return cons, nil
}

func collect(n hir.Node, env *types.Env, cons *[]Constraint) error {
	switch n := n.(type) {
	case *hir.Lit:
		emit(cons, n.Ty, types.TypeOfLit(n.Val.Kind))
		return nil

	case *hir.Var:
		ty, ok := env.Lookup(n.Name)
		if !ok {
			return cerrors.UnboundVariable{Name: n.Name.String()}
		}
		emit(cons, n.Ty, ty)
		return nil

	case *hir.Binop:
		if n.Op == ast.Eq || n.Op == ast.Neq {
			// rhs.ty ≡ lhs.ty, in that literal order (see operatorTypes doc).
			emit(cons, n.Rhs.Type(), n.Lhs.Type())
			emit(cons, n.Ty, types.Bool)
		} else {
			lhsTy, rhsTy, outTy := operatorTypes(n.Op)
			emit(cons, n.Lhs.Type(), lhsTy)
			emit(cons, n.Rhs.Type(), rhsTy)
			emit(cons, n.Ty, outTy)
		}
		if err := collect(n.Lhs, env, cons); err != nil {
			return err
		}
		return collect(n.Rhs, env, cons)

	case *hir.If:
		emit(cons, n.Test.Type(), types.Bool)
		emit(cons, n.Then.Type(), n.Ty)
		emit(cons, n.Else.Type(), n.Ty)
		if err := collect(n.Test, env, cons); err != nil {
			return err
		}
		if err := collect(n.Then, env, cons); err != nil {
			return err
		}
		return collect(n.Else, env, cons)

	case *hir.Let:
		emit(cons, n.Ty, n.Body.Type())
		emit(cons, n.Binding.Ty, n.Binding.Val.Type())
		if n.Binding.Annotation != nil {
			emit(cons, n.Binding.Annotation, n.Binding.Val.Type())
		}
		if err := collect(n.Binding.Val, env, cons); err != nil {
			return err
		}
		ext := env.Extend(n.Binding.Name, n.Binding.Ty)
		return collect(n.Body, ext, cons)

	case *hir.Letrec:
		emit(cons, n.Ty, n.Body.Type())
		ext := env
		for _, b := range n.Bindings {
			ext = ext.Extend(b.Name, b.Ty)
		}
		for _, b := range n.Bindings {
			emit(cons, b.Ty, b.Val.Type())
		}
		for _, b := range n.Bindings {
			if err := collect(b.Val, ext, cons); err != nil {
				return err
			}
		}
		return collect(n.Body, ext, cons)

	case *hir.Lambda:
		emit(cons, n.Ty, types.Fn(n.Param.Ty, n.Body.Type()))
		if n.Param.Annotation != nil {
			emit(cons, n.Param.Annotation, n.Param.Ty)
		}
		ext := env.Extend(n.Param.Name, n.Param.Ty)
		return collect(n.Body, ext, cons)

	case *hir.App:
		emit(cons, n.Func.Type(), types.Fn(n.Arg.Type(), n.Ty))
		if err := collect(n.Func, env, cons); err != nil {
			return err
		}
		return collect(n.Arg, env, cons)

	default:
		panic("constraint: Collect called on a node outside the pre-closure-conversion dialect")
	}
}

func emit(cons *[]Constraint, t, u *types.Monotype) {
	*cons = append(*cons, Constraint{T: t, U: u})
}

// operatorTypes returns (lhsType, rhsType, resultType) for a Binop.
// Eq/Neq constrain rhs.ty ≡ lhs.ty (that literal order, not lhs ≡ rhs)
// for determinism; unification is symmetric so the solved substitution
// is unaffected either way.
func operatorTypes(op ast.Op) (lhs, rhs, out *types.Monotype) {
	switch op {
	case ast.IntAdd, ast.IntSub, ast.IntMul, ast.IntDiv:
		return types.Int, types.Int, types.Int
	case ast.IntLt, ast.IntLeq, ast.IntGt, ast.IntGeq:
		return types.Int, types.Int, types.Bool
	case ast.FloatAdd, ast.FloatSub, ast.FloatMul, ast.FloatDiv:
		return types.Float, types.Float, types.Float
	case ast.FloatLt, ast.FloatLeq, ast.FloatGt, ast.FloatGeq:
		return types.Float, types.Float, types.Bool
	case ast.Eq, ast.Neq:
		panic("constraint: Eq/Neq handled specially by caller")
	default:
		panic("constraint: unknown operator")
	}
}
