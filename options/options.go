// Package options defines the compiler-wide configuration surface: the
// phase gate that namespace.Namespace.ExpandTree consults, the JIT/codegen
// toggles consumed by the external jit.Handle, and an optional
// lucent.toml project file loadable with BurntSushi/toml.
package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CompilationPhase selects how far down the pipeline ExpandTree should push
// newly read forms. Phases are totally ordered; Parse is the earliest.
type CompilationPhase int

const (
	Parse CompilationPhase = iota
	Analysis
	SLIR
	MLIR
	LIR
	IR
	NoOptimization
	O1
	O2
	O3
)

var phaseNames = [...]string{
	Parse: "parse", Analysis: "analysis", SLIR: "slir", MLIR: "mlir",
	LIR: "lir", IR: "ir", NoOptimization: "no-optimization",
	O1: "O1", O2: "O2", O3: "O3",
}

func (p CompilationPhase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("CompilationPhase(%d)", p)
	}
	return phaseNames[p]
}

// Options holds every compiler knob a caller should be able to tweak,
// regardless of which subsystem consumes it.
type Options struct {
	Verbose    bool
	WithColors bool

	JITEnableObjectCache              bool
	JITEnableGDBNotificationListener  bool
	JITEnablePerfNotificationListener bool
	JITLazy                           bool

	TargetTriple string
	HostTriple   string

	CompilationPhase CompilationPhase
}

// Default returns the options the CLI uses absent any overrides.
func Default() Options {
	return Options{
		WithColors:                        true,
		JITEnableObjectCache:              true,
		JITEnableGDBNotificationListener:  true,
		JITEnablePerfNotificationListener: true,
		CompilationPhase:                  NoOptimization,
	}
}

// ProjectConfig is the shape of an optional lucent.toml project file. It
// only covers load-path and phase defaults; JIT/triple tuning stays a
// programmatic, in-process concern the way spec.md §6 describes.
type ProjectConfig struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Source struct {
		LoadPaths []string `toml:"load_paths"`
	} `toml:"source"`
	Compile struct {
		Phase string `toml:"phase"`
	} `toml:"compile"`

	// Dir is the directory containing lucent.toml, set at load time.
	Dir string `toml:"-"`
}

var phaseByName = map[string]CompilationPhase{
	"parse": Parse, "analysis": Analysis, "slir": SLIR, "mlir": MLIR,
	"lir": LIR, "ir": IR, "no-optimization": NoOptimization,
	"O1": O1, "O2": O2, "O3": O3,
}

// LoadProjectConfig parses a lucent.toml file from dir, the way the
// teacher's manifest.Load parses maggie.toml: read, unmarshal, resolve Dir
// to an absolute path, apply defaults for anything left empty.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, "lucent.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cfg ProjectConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if len(cfg.Source.LoadPaths) == 0 {
		cfg.Source.LoadPaths = []string{"."}
	}

	return &cfg, nil
}

// Phase resolves the configured phase name to a CompilationPhase, falling
// back to NoOptimization for an empty or unrecognized value.
func (c *ProjectConfig) Phase() CompilationPhase {
	if p, ok := phaseByName[c.Compile.Phase]; ok {
		return p
	}
	return NoOptimization
}

// FindAndLoadProjectConfig walks up from startDir looking for lucent.toml,
// the way the teacher's manifest.FindAndLoad walks up looking for
// maggie.toml. Returns nil, nil if none is found anywhere above startDir.
func FindAndLoadProjectConfig(startDir string) (*ProjectConfig, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "lucent.toml")); err == nil {
			return LoadProjectConfig(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
