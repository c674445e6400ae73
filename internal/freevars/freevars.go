// Package freevars computes the free variables of a typed HIR
// subexpression as an order-preserving map from name to type. Insertion
// order matters: it fixes closure-environment struct layout
// deterministically across runs and builds.
package freevars

import (
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/ordermap"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
)

// Set is the order-preserving free-variable map.
type Set = hir.FreeVars

func empty() *Set { return ordermap.New[sym.Symbol, *types.Monotype]() }

func singleton(name sym.Symbol, ty *types.Monotype) *Set {
	s := empty()
	s.Insert(name, ty)
	return s
}

func without(s *Set, name sym.Symbol) *Set {
	out := empty()
	for _, k := range s.Keys() {
		if k == name {
			continue
		}
		v, _ := s.Get(k)
		out.Insert(k, v)
	}
	return out
}

func withoutAll(s *Set, names []sym.Symbol) *Set {
	out := s
	for _, n := range names {
		out = without(out, n)
	}
	return out
}

// Of returns the free variables of n.
func Of(n hir.Node) *Set {
	switch n := n.(type) {
	case *hir.Lit:
		return empty()

	case *hir.Var:
		return singleton(n.Name, n.Ty)

	case *hir.Binop:
		return ordermap.Union(Of(n.Lhs), Of(n.Rhs))

	case *hir.If:
		return ordermap.Union(ordermap.Union(Of(n.Test), Of(n.Then)), Of(n.Else))

	case *hir.Let:
		return ordermap.Union(Of(n.Binding.Val), without(Of(n.Body), n.Binding.Name))

	case *hir.Letrec:
		acc := Of(n.Body)
		names := make([]sym.Symbol, len(n.Bindings))
		for i, b := range n.Bindings {
			acc = ordermap.Union(acc, Of(b.Val))
			names[i] = b.Name
		}
		return withoutAll(acc, names)

	case *hir.Lambda:
		return without(Of(n.Body), n.Param.Name)

	case *hir.App:
		return ordermap.Union(Of(n.Func), Of(n.Arg))

	// Closure-converted dialect: EnvRef is never free (it already reads
	// from the environment), MkClosure/AppClosure mirror Lambda/App.
	case *hir.EnvRef:
		return empty()

	case *hir.MkClosure:
		return without(Of(n.Body), n.Param.Name)

	case *hir.AppClosure:
		return ordermap.Union(Of(n.Func), Of(n.Arg))

	default:
		panic("freevars: Of: unknown node variant")
	}
}
