package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/sym"
)

// envStructType builds the named Env_k struct type for a MkClosure site:
// one field per free variable, in insertion order.
func (g *Generator) envStructType(fv *hir.FreeVars) llvm.Type {
	name := fmt.Sprintf("Env%d", g.envSeq)
	g.envSeq++

	fields := make([]llvm.Type, fv.Len())
	for i, k := range fv.Keys() {
		ty, _ := fv.Get(k)
		fields[i] = g.llvmType(ty)
	}
	st := g.ctx.StructCreateNamed(name)
	st.StructSetBody(fields, false)
	return st
}

// beginClosure declares and emits the code for n's lambda, then mallocs
// its Env_k struct and assembles the returned Closure{code, env} value —
// without yet filling the environment's fields. Splitting construction
// from fill (see fillClosureEnv) lets compileLetrec store a binding's
// closure into its stack slot before any environment is populated,
// which is what lets self- and mutual-recursive captures through that
// slot observe the right value.
func (g *Generator) beginClosure(fn llvm.Value, n *hir.MkClosure) (llvm.Value, llvm.Value, llvm.Type, error) {
	paramTy := g.llvmType(n.Param.Ty)
	bodyTy := g.llvmType(n.Body.Type())
	fnTy := llvm.FunctionType(bodyTy, []llvm.Type{g.ptrTy, paramTy}, false)

	name := fmt.Sprintf("lambda%d", g.lambdaSeq)
	g.lambdaSeq++
	lambdaFn := llvm.AddFunction(g.mod, name, fnTy)

	envTy := g.envStructType(n.FreeVars)

	if err := g.emitLambdaBody(lambdaFn, n, envTy); err != nil {
		return llvm.Value{}, llvm.Value{}, llvm.Type{}, err
	}

	envPtr := g.b.CreateMalloc(envTy, "")
	envOpaque := g.b.CreateBitCast(envPtr, g.ptrTy, "")
	codeOpaque := g.b.CreateBitCast(lambdaFn, g.ptrTy, "")

	clo := llvm.Undef(g.cloTy)
	clo = g.b.CreateInsertValue(clo, codeOpaque, 0, "")
	clo = g.b.CreateInsertValue(clo, envOpaque, 1, "")

	return clo, envPtr, envTy, nil
}

// emitLambdaBody emits lambdaFn's entry block: unpack the captured
// environment into fresh local slots, bind the parameter, compile the
// body, and return. It runs in its own flat scope, disjoint from the
// enclosing function's — every reference inside the body is either the
// parameter or an EnvRef, never a direct reach into an outer scope.
func (g *Generator) emitLambdaBody(lambdaFn llvm.Value, n *hir.MkClosure, envTy llvm.Type) error {
	savedBlock := g.b.GetInsertBlock()
	savedScope := g.scope
	defer func() {
		g.b.SetInsertPointAtEnd(savedBlock)
		g.scope = savedScope
	}()

	entry := llvm.AddBasicBlock(lambdaFn, "entry")
	g.b.SetInsertPointAtEnd(entry)
	g.scope = make(map[sym.Symbol]llvm.Value)

	params := lambdaFn.Params()
	envArg, paramArg := params[0], params[1]

	typedEnv := g.b.CreateBitCast(envArg, llvm.PointerType(envTy, 0), "")
	for i, name := range n.FreeVars.Keys() {
		field := g.b.CreateStructGEP(typedEnv, i, "")
		val := g.b.CreateLoad(field, "")
		slot := g.b.CreateAlloca(val.Type(), "")
		g.b.CreateStore(val, slot)
		g.define(name, slot)
	}

	paramSlot := g.b.CreateAlloca(paramArg.Type(), "")
	g.b.CreateStore(paramArg, paramSlot)
	g.define(n.Param.Name, paramSlot)

	bodyVal, err := g.compile(lambdaFn, n.Body)
	if err != nil {
		return err
	}
	g.b.CreateRet(bodyVal)
	return nil
}

// fillClosureEnv populates envPtr's fields by loading each free variable
// out of the scope active at the construction site (the caller, not the
// lambda body) and storing it into the corresponding field.
func (g *Generator) fillClosureEnv(n *hir.MkClosure, envPtr llvm.Value, envTy llvm.Type) {
	for i, name := range n.FreeVars.Keys() {
		val := g.load(name)
		field := g.b.CreateStructGEP(envPtr, i, "")
		g.b.CreateStore(val, field)
	}
}

// compileLetrec binds every name in n.Bindings before compiling any
// value, so that a MkClosure binding's own name resolves inside its own
// (and its siblings') captured environment. It assembles every
// binding's Closure{code, env} pair and stores it into that binding's
// slot first — a (code, env) pair is known as soon as the lambda is
// declared and its environment is malloc'd, before any field is
// populated — and only afterward fills every environment's fields, by
// which point every sibling binding's slot already holds its closure
// value. This is what makes recursive and mutually-recursive calls
// resolve correctly.
func (g *Generator) compileLetrec(fn llvm.Value, n *hir.Letrec) (llvm.Value, error) {
	slots := make(map[sym.Symbol]llvm.Value, len(n.Bindings))
	for _, b := range n.Bindings {
		slot := g.b.CreateAlloca(g.llvmType(b.Ty), "")
		slots[b.Name] = slot
		g.define(b.Name, slot)
	}

	type pending struct {
		n      *hir.MkClosure
		envPtr llvm.Value
		envTy  llvm.Type
	}
	var deferred []pending

	for _, b := range n.Bindings {
		if mk, ok := b.Val.(*hir.MkClosure); ok {
			clo, envPtr, envTy, err := g.beginClosure(fn, mk)
			if err != nil {
				return llvm.Value{}, err
			}
			g.b.CreateStore(clo, slots[b.Name])
			deferred = append(deferred, pending{mk, envPtr, envTy})
			continue
		}

		// A non-function recursive binding cannot meaningfully observe its
		// own value before it is computed; compile and store it plainly.
		val, err := g.compile(fn, b.Val)
		if err != nil {
			return llvm.Value{}, err
		}
		g.b.CreateStore(val, slots[b.Name])
	}

	for _, d := range deferred {
		g.fillClosureEnv(d.n, d.envPtr, d.envTy)
	}

	return g.compile(fn, n.Body)
}
