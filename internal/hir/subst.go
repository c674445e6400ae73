package hir

import (
	"github.com/simpl-lang/simplc/internal/ordermap"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
)

// ApplySubstitution applies sub to every ty field in n, returning a new
// tree. For a binder, both the binder's ty and the child's ty are
// updated. No structural rewriting occurs: node shapes and binder names
// are left alone.
func ApplySubstitution(n Node, sub types.Substitution) Node {
	switch n := n.(type) {
	case *Lit:
		return &Lit{base{sub.Apply(n.Ty)}, n.Val}

	case *Var:
		return &Var{base{sub.Apply(n.Ty)}, n.Name}

	case *If:
		return &If{base{sub.Apply(n.Ty)},
			ApplySubstitution(n.Test, sub),
			ApplySubstitution(n.Then, sub),
			ApplySubstitution(n.Else, sub)}

	case *Let:
		return &Let{base{sub.Apply(n.Ty)}, applyBinding(n.Binding, sub), ApplySubstitution(n.Body, sub)}

	case *Letrec:
		bindings := make([]Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			bindings[i] = applyBinding(b, sub)
		}
		return &Letrec{base{sub.Apply(n.Ty)}, bindings, ApplySubstitution(n.Body, sub)}

	case *Lambda:
		return &Lambda{base{sub.Apply(n.Ty)}, applyParam(n.Param, sub), ApplySubstitution(n.Body, sub)}

	case *App:
		return &App{base{sub.Apply(n.Ty)}, ApplySubstitution(n.Func, sub), ApplySubstitution(n.Arg, sub)}

	case *Binop:
		return &Binop{base{sub.Apply(n.Ty)}, n.Op, ApplySubstitution(n.Lhs, sub), ApplySubstitution(n.Rhs, sub)}

	case *MkClosure:
		fv := ordermap.New[sym.Symbol, *types.Monotype]()
		for _, name := range n.FreeVars.Keys() {
			ty, _ := n.FreeVars.Get(name)
			fv.Insert(name, sub.Apply(ty))
		}
		return &MkClosure{base{sub.Apply(n.Ty)}, applyParam(n.Param, sub), fv, ApplySubstitution(n.Body, sub)}

	case *AppClosure:
		return &AppClosure{base{sub.Apply(n.Ty)}, ApplySubstitution(n.Func, sub), ApplySubstitution(n.Arg, sub)}

	case *EnvRef:
		return &EnvRef{base{sub.Apply(n.Ty)}, n.Name}

	default:
		panic("hir: ApplySubstitution: unknown node variant")
	}
}

func applyBinding(b Binding, sub types.Substitution) Binding {
	ann := b.Annotation
	if ann != nil {
		ann = sub.Apply(ann)
	}
	return Binding{Ty: sub.Apply(b.Ty), Name: b.Name, Annotation: ann, Val: ApplySubstitution(b.Val, sub)}
}

func applyParam(p Param, sub types.Substitution) Param {
	ann := p.Annotation
	if ann != nil {
		ann = sub.Apply(ann)
	}
	return Param{Ty: sub.Apply(p.Ty), Name: p.Name, Annotation: ann}
}
