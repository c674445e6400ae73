// Package alpha gives every binder in a typed HIR tree a globally unique
// name, eliminating shadowing. It must run on ANF-normalized trees:
// closure conversion (internal/closure) depends on its output, since
// closure conversion is not hygienic by itself.
package alpha

import (
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/sym"
)

// renameEnv maps a source symbol to its globally-unique renamed symbol.
// Immutable; extending returns a new environment node, mirroring
// types.Env's clone-and-extend discipline.
type renameEnv struct {
	parent *renameEnv
	from   sym.Symbol
	to     sym.Symbol
}

func (e *renameEnv) extend(from, to sym.Symbol) *renameEnv {
	return &renameEnv{parent: e, from: from, to: to}
}

// lookup returns the current mapping for name, defaulting to name itself
// so that free references to primitives (add, sub, ...) pass through
// unchanged.
func (e *renameEnv) lookup(name sym.Symbol) sym.Symbol {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.from == name {
			return cur.to
		}
	}
	return name
}

// Renamer holds the gensym used to mint fresh unique names.
type Renamer struct {
	gen *sym.Gensym
}

// NewRenamer constructs a Renamer. gen should be fresh for this
// compilation.
func NewRenamer(gen *sym.Gensym) *Renamer {
	return &Renamer{gen: gen}
}

// Rename alpha-renames n. Output invariant: every binder has a name
// distinct from every other binder, and no inner binder shadows an
// outer one.
func (r *Renamer) Rename(n hir.Node) hir.Node {
	return r.rename(n, nil)
}

func (r *Renamer) rename(n hir.Node, env *renameEnv) hir.Node {
	switch n := n.(type) {
	case *hir.Lit:
		return n

	case *hir.Var:
		return hir.NewVar(n.Ty, env.lookup(n.Name))

	case *hir.If:
		return hir.NewIf(n.Ty, r.rename(n.Test, env), r.rename(n.Then, env), r.rename(n.Else, env))

	case *hir.Let:
		val := r.rename(n.Binding.Val, env)
		fresh := r.gen.Derive(n.Binding.Name)
		ext := env.extend(n.Binding.Name, fresh)
		binding := n.Binding
		binding.Name = fresh
		binding.Val = val
		return hir.NewLet(n.Ty, binding, r.rename(n.Body, ext))

	case *hir.Letrec:
		// Extend first with every binding's fresh name, then rewrite all
		// vals and the body under the full extension.
		ext := env
		freshNames := make([]sym.Symbol, len(n.Bindings))
		for i, b := range n.Bindings {
			freshNames[i] = r.gen.Derive(b.Name)
			ext = ext.extend(b.Name, freshNames[i])
		}
		bindings := make([]hir.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			b.Name = freshNames[i]
			b.Val = r.rename(b.Val, ext)
			bindings[i] = b
		}
		return hir.NewLetrec(n.Ty, bindings, r.rename(n.Body, ext))

	case *hir.Lambda:
		fresh := r.gen.Derive(n.Param.Name)
		ext := env.extend(n.Param.Name, fresh)
		param := n.Param
		param.Name = fresh
		return hir.NewLambda(n.Ty, param, r.rename(n.Body, ext))

	case *hir.App:
		return hir.NewApp(n.Ty, r.rename(n.Func, env), r.rename(n.Arg, env))

	case *hir.Binop:
		return hir.NewBinop(n.Ty, n.Op, r.rename(n.Lhs, env), r.rename(n.Rhs, env))

	default:
		panic("alpha: Rename called on a node outside the pre-closure-conversion dialect")
	}
}
