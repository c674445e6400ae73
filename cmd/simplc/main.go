package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/config"
	"github.com/simpl-lang/simplc/internal/pipeline"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		configFlag = flag.String("config", "simplc.yaml", "path to an optional config file")
		dumpFlag   = flag.Bool("dump", false, "print every intermediate representation")
		helpFlag   = flag.Bool("help", false, "show help")
	)
	flag.Parse()

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	if !cfg.Color {
		color.NoColor = true
	}
	cfg.DumpHIR, cfg.DumpTyped, cfg.DumpANF, cfg.DumpClosure = *dumpFlag, *dumpFlag, *dumpFlag, *dumpFlag

	switch flag.Arg(0) {
	case "list":
		listExamples()

	case "check":
		requireExampleArg("check")
		checkExample(flag.Arg(1), cfg)

	case "emit-llvm":
		requireExampleArg("emit-llvm")
		emitLLVM(flag.Arg(1), cfg)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func loadConfig(path string) (pipeline.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{Config: c}, nil
}

func requireExampleArg(cmd string) {
	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "%s: %s needs an example name; try '%s list'\n", red("Error"), cmd, os.Args[0])
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("simplc - a small eagerly-evaluated functional-language compiler core"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  simplc list                 list the named example programs")
	fmt.Println("  simplc check <name>         run inference and print the result type")
	fmt.Println("  simplc emit-llvm <name>     compile an example and print its LLVM IR")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func listExamples() {
	for _, ex := range examples {
		if ex.wantErr != "" {
			fmt.Printf("  %-24s %s\n", ex.name, cyan("expected to be rejected: "+ex.wantErr))
			continue
		}
		fmt.Printf("  %-24s\n", ex.name)
	}
}

func checkExample(name string, cfg pipeline.Config) {
	ex, ok := findExample(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such example %q\n", red("Error"), name)
		os.Exit(1)
	}

	result, err := pipeline.Run(ex.expr, cfg)
	reportDumps(result, cfg)

	if err != nil {
		if ex.wantErr != "" {
			fmt.Printf("%s %s was rejected as expected: %v\n", green("✓"), name, err)
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	if ex.wantErr != "" {
		fmt.Fprintf(os.Stderr, "%s: %s was expected to be rejected (%s) but type-checked as %s\n",
			red("Error"), name, ex.wantErr, result.Type)
		os.Exit(1)
	}
	fmt.Printf("%s %s : %s\n", green("✓"), name, result.Type)
}

func emitLLVM(name string, cfg pipeline.Config) {
	ex, ok := findExample(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such example %q\n", red("Error"), name)
		os.Exit(1)
	}

	result, gen, err := pipeline.Compile(ex.expr, cfg)
	reportDumps(result, cfg)
	if gen != nil {
		defer gen.Dispose()
	}

	if err != nil {
		if _, ok := err.(cerrors.VerificationFailure); ok && !cfg.VerifierFatal {
			fmt.Fprintf(os.Stderr, "%s: %v\n", color.New(color.FgYellow).Sprint("Warning"), err)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	fmt.Println(result.Artifacts.Module.String())
}

func reportDumps(result pipeline.Result, cfg pipeline.Config) {
	if cfg.DumpHIR && result.Artifacts.Built != nil {
		fmt.Println(cyan("-- built HIR --"))
		fmt.Printf("%#v\n", result.Artifacts.Built)
	}
	if cfg.DumpTyped && result.Artifacts.Typed != nil {
		fmt.Println(cyan("-- typed HIR --"))
		fmt.Printf("%#v\n", result.Artifacts.Typed)
	}
	if cfg.DumpANF && result.Artifacts.ANF != nil {
		fmt.Println(cyan("-- ANF, alpha-renamed --"))
		fmt.Printf("%#v\n", result.Artifacts.ANF)
	}
	if cfg.DumpClosure && result.Artifacts.Closed != nil {
		fmt.Println(cyan("-- closure-converted --"))
		fmt.Printf("%#v\n", result.Artifacts.Closed)
	}
}
