package main

import (
	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/types"
)

// example pairs a name with a hand-built surface tree. The surface
// parser is an out-of-scope collaborator, so every program this driver
// runs is constructed directly as an ast.Expr.
type example struct {
	name string
	expr ast.Expr
	// wantErr describes a program that is expected to be rejected, and
	// names the rejection in a short phrase (used only for the listing).
	wantErr string
}

func intLit(v int64) *ast.Lit    { return &ast.Lit{Kind: types.LitInt, Int: v} }
func boolLit(v bool) *ast.Lit    { return &ast.Lit{Kind: types.LitBool, Bool: v} }
func v(name string) *ast.Var     { return &ast.Var{Name: name} }
func app(f, a ast.Expr) *ast.App { return &ast.App{Func: f, Arg: a} }
func app2(f, a, b ast.Expr) *ast.App {
	return app(app(f, a), b)
}

var examples = []example{
	{
		name: "literal",
		// 5
		expr: intLit(5),
	},
	{
		name: "if",
		// if true then 100 else 200
		expr: &ast.If{Test: boolLit(true), Then: intLit(100), Else: intLit(200)},
	},
	{
		name: "let",
		// let x = 5 in x
		expr: &ast.Let{
			Bindings: []ast.Binding{{Name: "x", Value: intLit(5)}},
			Body:     v("x"),
		},
	},
	{
		name: "let-ignored-closure",
		// let x = 5, f = \ignored -> x in f 100
		expr: &ast.Let{
			Bindings: []ast.Binding{
				{Name: "x", Value: intLit(5)},
				{Name: "f", Value: &ast.Lambda{Params: []ast.Param{{Name: "ignored"}}, Body: v("x")}},
			},
			Body: app(v("f"), intLit(100)),
		},
	},
	{
		name: "nested-bool-if",
		// (\b -> if b then 100 else 200) ((\b -> if b then false else true) true)
		expr: app(
			&ast.Lambda{Params: []ast.Param{{Name: "b"}}, Body: &ast.If{Test: v("b"), Then: intLit(100), Else: intLit(200)}},
			app(
				&ast.Lambda{Params: []ast.Param{{Name: "b"}}, Body: &ast.If{Test: v("b"), Then: boolLit(false), Else: boolLit(true)}},
				boolLit(true),
			),
		),
	},
	{
		name: "compose",
		// let plus2 = \x -> x + 2, mul3 = \x -> x * 3,
		//     compose = \f, g, x -> f (g x), myFn = compose mul3 plus2
		// in myFn 5
		expr: &ast.Let{
			Bindings: []ast.Binding{
				{Name: "plus2", Value: &ast.Lambda{
					Params: []ast.Param{{Name: "x"}},
					Body:   &ast.Binop{Op: ast.IntAdd, Lhs: v("x"), Rhs: intLit(2)},
				}},
				{Name: "mul3", Value: &ast.Lambda{
					Params: []ast.Param{{Name: "x"}},
					Body:   &ast.Binop{Op: ast.IntMul, Lhs: v("x"), Rhs: intLit(3)},
				}},
				{Name: "compose", Value: &ast.Lambda{
					Params: []ast.Param{{Name: "f"}, {Name: "g"}, {Name: "x"}},
					Body:   app(v("f"), app(v("g"), v("x"))),
				}},
				{Name: "myFn", Value: app2(v("compose"), v("mul3"), v("plus2"))},
			},
			Body: app(v("myFn"), intLit(5)),
		},
	},
	{
		name: "countdown",
		// letrec countdown = \x -> if is_zero x then 0 else countdown (sub x 1)
		// in countdown
		expr: &ast.Letrec{
			Bindings: []ast.Binding{
				{Name: "countdown", Value: &ast.Lambda{
					Params: []ast.Param{{Name: "x"}},
					Body: &ast.If{
						Test: app(v("is_zero"), v("x")),
						Then: intLit(0),
						Else: app(v("countdown"), app2(v("sub"), v("x"), intLit(1))),
					},
				}},
			},
			Body: v("countdown"),
		},
	},
	{
		name: "triple-compose",
		// \f -> \g -> \x -> f (g x)
		expr: &ast.Lambda{
			Params: []ast.Param{{Name: "f"}},
			Body: &ast.Lambda{
				Params: []ast.Param{{Name: "g"}},
				Body: &ast.Lambda{
					Params: []ast.Param{{Name: "x"}},
					Body:   app(v("f"), app(v("g"), v("x"))),
				},
			},
		},
	},
	{
		name:    "reject-occurs-check",
		wantErr: "occurs check",
		// \x -> x x
		expr: &ast.Lambda{Params: []ast.Param{{Name: "x"}}, Body: app(v("x"), v("x"))},
	},
	{
		name:    "reject-type-mismatch",
		wantErr: "type mismatch",
		// 1 + true
		expr: &ast.Binop{Op: ast.IntAdd, Lhs: intLit(1), Rhs: boolLit(true)},
	},
}

func findExample(name string) (example, bool) {
	for _, ex := range examples {
		if ex.name == name {
			return ex, true
		}
	}
	return example{}, false
}
