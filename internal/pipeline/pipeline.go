// Package pipeline wires every compiler stage into a single entry point:
// build, collect, solve, substitute, normalize, rename, convert, and
// generate. Each stage either completes or returns an error; there are
// no partial outputs, and per-phase timings are recorded for callers
// that want to profile a slow compile.
package pipeline

import (
	"fmt"
	"time"

	"tinygo.org/x/go-llvm"

	"github.com/simpl-lang/simplc/internal/alpha"
	"github.com/simpl-lang/simplc/internal/anf"
	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/closure"
	"github.com/simpl-lang/simplc/internal/codegen"
	"github.com/simpl-lang/simplc/internal/config"
	"github.com/simpl-lang/simplc/internal/constraint"
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
	"github.com/simpl-lang/simplc/internal/unify"
)

// Config controls target-dependent and diagnostic knobs. It embeds
// config.Config so a simplc.yaml file maps directly onto pipeline
// behavior, plus switches for dumping intermediate representations.
type Config struct {
	config.Config

	DumpHIR     bool // print the builder's output before type inference
	DumpTyped   bool // print HIR after substitution is applied
	DumpANF     bool // print the ANF-normalized, alpha-renamed tree
	DumpClosure bool // print the closure-converted tree
}

// DefaultConfig returns a Config built from config.Default().
func DefaultConfig() Config {
	return Config{Config: config.Default()}
}

// Artifacts holds every intermediate representation a caller might want
// to inspect or print, keyed by the stage that produced it.
type Artifacts struct {
	Built  hir.Node
	Typed  hir.Node
	ANF    hir.Node
	Closed hir.Node
	Module llvm.Module
}

// Result is the pipeline's full output: the final module plus every
// intermediate artifact and per-phase timing, in milliseconds.
type Result struct {
	Artifacts    Artifacts
	Type         *types.Monotype
	PhaseTimings map[string]int64
}

// Run compiles e end to end: HIR construction, type inference, ANF
// normalization, alpha-renaming, closure conversion, and LLVM codegen.
// The returned Result.Artifacts.Module is owned by the caller's
// Generator; callers that want to dispose LLVM resources must hold onto
// the Generator returned alongside it (see Compile).
func Run(e ast.Expr, cfg Config) (Result, error) {
	result, _, err := compile(e, cfg)
	return result, err
}

// Compile is Run, but also returns the Generator so the caller can
// Dispose its LLVM context once done with Result.Artifacts.Module (e.g.
// after printing or writing it to a file).
func Compile(e ast.Expr, cfg Config) (Result, *codegen.Generator, error) {
	return compile(e, cfg)
}

func compile(e ast.Expr, cfg Config) (Result, *codegen.Generator, error) {
	result := Result{PhaseTimings: make(map[string]int64)}

	table := sym.NewTable()
	tyGen := types.NewTypeVarGen()
	nameGen := sym.NewGensym(table, "t")

	start := time.Now()
	builder := hir.NewBuilder(tyGen, table)
	built := builder.Build(e)
	result.Artifacts.Built = built
	result.PhaseTimings["build"] = time.Since(start).Milliseconds()

	start = time.Now()
	env := types.DefaultEnv(table)
	cons, err := constraint.Collect(built, env)
	if err != nil {
		return result, nil, fmt.Errorf("constraint collection: %w", err)
	}
	result.PhaseTimings["collect"] = time.Since(start).Milliseconds()

	start = time.Now()
	sub, err := unify.Solve(cons)
	if err != nil {
		return result, nil, fmt.Errorf("unification: %w", err)
	}
	result.PhaseTimings["unify"] = time.Since(start).Milliseconds()

	start = time.Now()
	typed := hir.ApplySubstitution(built, sub)
	result.Artifacts.Typed = typed
	result.Type = typed.Type()
	result.PhaseTimings["substitute"] = time.Since(start).Milliseconds()

	start = time.Now()
	normalized := anf.Normalize(typed, nameGen)
	renamer := alpha.NewRenamer(nameGen)
	renamed := renamer.Rename(normalized)
	result.Artifacts.ANF = renamed
	result.PhaseTimings["normalize"] = time.Since(start).Milliseconds()

	start = time.Now()
	converted := closure.Convert(renamed)
	result.Artifacts.Closed = converted
	result.PhaseTimings["convert"] = time.Since(start).Milliseconds()

	start = time.Now()
	gen := codegen.New("simpl", table, codegen.Options{WordSize: cfg.WordSize})
	mod, err := gen.Generate(converted)
	result.Artifacts.Module = mod
	result.PhaseTimings["codegen"] = time.Since(start).Milliseconds()
	if err != nil {
		if cfg.VerifierFatal {
			gen.Dispose()
			return result, nil, err
		}
		if _, ok := err.(cerrors.VerificationFailure); !ok {
			gen.Dispose()
			return result, nil, err
		}
		// Non-fatal verifier failure: return the module as-is, for the
		// caller to inspect, alongside the error that describes why.
		return result, gen, err
	}

	return result, gen, nil
}
