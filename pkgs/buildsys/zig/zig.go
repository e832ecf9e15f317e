// Package zig builds a Zig source file into a static or dynamic library from
// a Cargo build script.
//
// A Build accumulates intent through chained setters and is finalized once:
//
//	zig.New().
//		File("src/main.zig").
//		AsStatic().
//		Optimization(zig.Fast).
//		MustFinish(context.Background())
//
// Finalization prints the link directives Cargo needs and then replaces the
// current process with `zig build-lib`, so the compiler's own exit status is
// what Cargo observes.
package zig

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/goplus/zigbuild/pkgs/buildsys"
	"github.com/goplus/zigbuild/pkgs/cargo"
	"github.com/hashicorp/go-hclog"
)

// Opt is an explicit optimization level.
type Opt int

const (
	Fast Opt = iota + 1
	Safe
	Small
)

// Optimization modes understood by `zig -O`.
const (
	ModeDebug        = "Debug"
	ModeReleaseFast  = "ReleaseFast"
	ModeReleaseSafe  = "ReleaseSafe"
	ModeReleaseSmall = "ReleaseSmall"
)

// Mode returns the zig optimization mode for o.
func (o Opt) Mode() string {
	switch o {
	case Fast:
		return ModeReleaseFast
	case Safe:
		return ModeReleaseSafe
	case Small:
		return ModeReleaseSmall
	}
	return ""
}

func (o Opt) String() string {
	return o.Mode()
}

// Kind is the kind of library emitted.
type Kind int

const (
	Dynamic Kind = iota
	Static
)

// zigFlag is the emit-mode flag passed to `zig build-lib`.
func (k Kind) zigFlag() string {
	if k == Static {
		return "-static"
	}
	return "-dynamic"
}

// Suffix is the file-type suffix of the emitted library.
func (k Kind) Suffix() string {
	if k == Static {
		return "a"
	}
	return "so"
}

func (k Kind) String() string {
	if k == Static {
		return "static"
	}
	return "dynamic"
}

// LogMode controls the diagnostic log file.
type LogMode int

const (
	// LogOff writes no log file.
	LogOff LogMode = iota
	// LogBestEffort ignores failures to open or write the log file.
	LogBestEffort
	// LogStrict fails finalization when the log file cannot be written.
	LogStrict
)

type targetMode int

const (
	targetHost targetMode = iota
	targetNative
	targetExplicit
)

// Runner hands the process over to the compiler.
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// Build describes one library compilation.
type Build struct {
	file     string
	libName  string
	flags    []string
	outDir   string
	kind     Kind
	opt      Opt
	compiler string

	target     targetMode
	triple     string
	soname     bool
	dylibToken cargo.LinkKind

	logMode LogMode
	logFile string

	host   *cargo.Context
	stdout io.Writer
	runner Runner
	spawn  bool
	logger hclog.Logger
	now    func() time.Time
}

var _ buildsys.LibraryBuilder = (*Build)(nil)

// New returns an empty Build: dynamic, SONAME override on, target derived
// from the host triple, optimization derived from the host profile.
func New() *Build {
	return &Build{
		kind:       Dynamic,
		compiler:   "zig",
		soname:     true,
		dylibToken: cargo.LinkDylib,
		stdout:     os.Stdout,
		logger:     hclog.NewNullLogger(),
		now:        time.Now,
	}
}

// File sets the source file to compile. Setting it again overwrites it.
func (b *Build) File(path string) *Build {
	b.file = path
	return b
}

// SourceFile returns the configured source file, "" if none.
func (b *Build) SourceFile() string {
	return b.file
}

// LibName sets the library name. Defaults to the source file's stem.
func (b *Build) LibName(name string) *Build {
	b.libName = name
	return b
}

// Flags appends extra compiler flags, preserving order.
func (b *Build) Flags(flags ...string) *Build {
	b.flags = append(b.flags, flags...)
	return b
}

// OutDir sets the artifact and cache directory. Defaults to OUT_DIR.
func (b *Build) OutDir(dir string) *Build {
	b.outDir = dir
	return b
}

func (b *Build) AsStatic() *Build {
	b.kind = Static
	return b
}

func (b *Build) AsDynamic() *Build {
	b.kind = Dynamic
	return b
}

// Optimization sets an explicit optimization level. Without one the mode
// follows the host profile: Debug for debug, ReleaseSafe for release.
func (b *Build) Optimization(o Opt) *Build {
	b.opt = o
	return b
}

// Target compiles for an explicit zig target triple. An empty triple is
// the same as NativeTarget.
func (b *Build) Target(triple string) *Build {
	if triple == "" {
		return b.NativeTarget()
	}
	b.target = targetExplicit
	b.triple = triple
	return b
}

// HostTarget derives the zig triple from the host triple by dropping the
// vendor component. This is the default.
func (b *Build) HostTarget() *Build {
	b.target = targetHost
	b.triple = ""
	return b
}

// NativeTarget omits target selection and lets zig pick its default.
func (b *Build) NativeTarget() *Build {
	b.target = targetNative
	b.triple = ""
	return b
}

// Soname toggles the -fsoname=lib<name>.<suffix> override.
func (b *Build) Soname(on bool) *Build {
	b.soname = on
	return b
}

// DylibToken sets the link kind announced for dynamic libraries, either
// cargo.LinkDylib (default) or cargo.LinkDynlib. Any other kind makes
// Directives and Finish fail.
func (b *Build) DylibToken(kind cargo.LinkKind) *Build {
	b.dylibToken = kind
	return b
}

// Log sets the diagnostic log mode.
func (b *Build) Log(mode LogMode) *Build {
	b.logMode = mode
	return b
}

// LogFile overrides the diagnostic log path, <out dir>/logs.txt by default.
func (b *Build) LogFile(path string) *Build {
	b.logFile = path
	return b
}

// Host injects the host build facts. Defaults to the process environment.
func (b *Build) Host(c cargo.Context) *Build {
	b.host = &c
	return b
}

// Stdout sets where directives are written.
func (b *Build) Stdout(w io.Writer) *Build {
	b.stdout = w
	return b
}

// Runner sets how the compiler is started.
func (b *Build) Runner(r Runner) *Build {
	b.runner = r
	return b
}

// Spawn runs the compiler as a child and exits with its status instead of
// replacing the process.
func (b *Build) Spawn(on bool) *Build {
	b.spawn = on
	return b
}

func (b *Build) Logger(l hclog.Logger) *Build {
	b.logger = l
	return b
}

// Compiler overrides the compiler executable, looked up in PATH.
func (b *Build) Compiler(name string) *Build {
	b.compiler = name
	return b
}

func (b *Build) hostContext() cargo.Context {
	if b.host != nil {
		return *b.host
	}
	return cargo.FromEnv()
}
