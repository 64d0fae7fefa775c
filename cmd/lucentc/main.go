// Command lucentc is the Lucent front-end driver: it resolves a namespace
// through the source manager and parses it with the reader. `run` reports
// how many top-level forms it read; `cc` then invokes `$CC --version`
// (the parsed forms are not passed to the C compiler).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/lucent-lang/lucent/jit"
	"github.com/lucent-lang/lucent/loc"
	"github.com/lucent-lang/lucent/namespace"
	"github.com/lucent-lang/lucent/options"
	"github.com/lucent-lang/lucent/sourcemgr"

	// Registers the default commonlog backend so GetLogger calls throughout
	// reader/sourcemgr/namespace have somewhere to write.
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lucentc [-v] <cc|run> [options] <namespace>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lucentc run -I . a.b.c      # read and expand namespace a.b.c\n")
		fmt.Fprintf(os.Stderr, "  lucentc cc -I . a.b.c       # read a.b.c, then run $CC --version\n")
	}

	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "run":
		os.Exit(runCommand(rest, *verbose))
	case "cc":
		os.Exit(ccCommand(rest, *verbose))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func subFlags(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	loadPath := fs.String("I", ".", "Load path root to search for namespace files")
	phase := fs.String("phase", "no-optimization", "Compilation phase to expand up to")
	return fs, loadPath, phase
}

func runCommand(args []string, verbose bool) int {
	fs, loadPath, phase := subFlags("run")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run: expected exactly one namespace argument")
		return 1
	}
	ns, err := readOne(fs.Arg(0), *loadPath, *phase, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s: %d top-level form(s)\n", ns.Name, len(ns.Tree()))
	return 0
}

func ccCommand(args []string, verbose bool) int {
	fs, loadPath, phase := subFlags("cc")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "cc: expected exactly one namespace argument")
		return 1
	}
	ns, err := readOne(fs.Arg(0), *loadPath, *phase, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}

	if verbose {
		fmt.Printf("%s: parsed %d top-level form(s), invoking %s\n", ns.Name, len(ns.Tree()), cc)
	}

	cmd := exec.Command(cc, "--version")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error invoking %s: %v\n", cc, err)
		return 1
	}
	return 0
}

func readOne(name, loadPath, phaseName string, verbose bool) (*namespace.Namespace, error) {
	opts := options.Default()
	opts.Verbose = verbose
	if p, ok := phaseByName(phaseName); ok {
		opts.CompilationPhase = p
	}

	sm := sourcemgr.New()
	sm.SetLoadPaths([]string{loadPath})

	handle := jit.NewNullHandle(opts)

	ns, lerr := sm.ReadNamespace(name, loc.NewRange(loc.Unknown("")), handle)
	if lerr != nil {
		return nil, lerr
	}

	return ns, nil
}

func phaseByName(name string) (options.CompilationPhase, bool) {
	switch name {
	case "parse":
		return options.Parse, true
	case "analysis":
		return options.Analysis, true
	case "slir":
		return options.SLIR, true
	case "mlir":
		return options.MLIR, true
	case "lir":
		return options.LIR, true
	case "ir":
		return options.IR, true
	case "no-optimization":
		return options.NoOptimization, true
	case "O1":
		return options.O1, true
	case "O2":
		return options.O2, true
	case "O3":
		return options.O3, true
	}
	return options.NoOptimization, false
}
