package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/goplus/zigbuild/pkgs/buildsys/zig"
	"github.com/goplus/zigbuild/pkgs/cargo"
)

const sample = `
source: src/calc.zig
name: calc
kind: static
optimize: small
target: native
soname: false
flags: [-lc, -fPIC]
log: strict
log_file: /tmp/zig.log
min_zig_version: v0.11.0
`

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.MinZigVersion != "v0.11.0" || m.LogFile != "/tmp/zig.log" {
		t.Fatalf("unexpected manifest: %+v", m)
	}

	b := m.Apply(zig.New().Host(cargo.Context{OutDir: "/out", Profile: "debug"}))
	args, err := b.Args()
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	want := []string{
		"build-lib", "-static", "-femit-bin=/out/libcalc.a",
		"--cache-dir", "/out", "-O", "ReleaseSmall", "-lc", "-fPIC", "src/calc.zig",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEmptyKeepsDefaults(t *testing.T) {
	m, err := Parse([]byte("source: main.zig\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	host := cargo.Context{OutDir: "/out", Target: "x86_64-unknown-linux-gnu", Profile: "release"}
	b := m.Apply(zig.New().Host(host))

	d, err := b.Directives()
	if err != nil {
		t.Fatalf("Directives: %v", err)
	}
	want := []string{
		"cargo:rustc-link-search=native=/out",
		"cargo:rustc-link-lib=dylib=main",
		"cargo:rustc-rerun-if-changed=main.zig",
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("Directives mismatch (-want +got):\n%s", diff)
	}
	mode, err := b.ResolveMode()
	if err != nil || mode != zig.ModeReleaseSafe {
		t.Fatalf("mode = %q, %v, want %q", mode, err, zig.ModeReleaseSafe)
	}
	triple, ok, err := b.ResolveTarget()
	if err != nil || !ok || triple != "x86_64-linux-gnu" {
		t.Fatalf("target = %q, %v, %v", triple, ok, err)
	}
}

func TestParseRejects(t *testing.T) {
	for _, doc := range []string{
		"kind: plugin\n",
		"optimize: turbo\n",
		"log: verbose\n",
		"dylib_token: static\n",
		"dylib_token: bogus\n",
		"unknown_key: 1\n",
		"flags: nope: [\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", doc)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if k, err := ParseKind("STATIC"); err != nil || k != zig.Static {
		t.Fatalf("ParseKind(STATIC) = %v, %v", k, err)
	}
	if o, err := ParseOpt("ReleaseFast"); err != nil || o != zig.Fast {
		t.Fatalf("ParseOpt(ReleaseFast) = %v, %v", o, err)
	}
	if o, err := ParseOpt(""); err != nil || o != 0 {
		t.Fatalf("ParseOpt(\"\") = %v, %v", o, err)
	}
	if l, err := ParseLogMode("best-effort"); err != nil || l != zig.LogBestEffort {
		t.Fatalf("ParseLogMode(best-effort) = %v, %v", l, err)
	}
	if k, err := ParseLinkKind(""); err != nil || k != cargo.LinkDylib {
		t.Fatalf("ParseLinkKind(\"\") = %v, %v", k, err)
	}
	if k, err := ParseLinkKind("DYNLIB"); err != nil || k != cargo.LinkDynlib {
		t.Fatalf("ParseLinkKind(DYNLIB) = %v, %v", k, err)
	}
	for _, s := range []string{"static", "bogus"} {
		if _, err := ParseLinkKind(s); !errors.Is(err, zig.ErrBadLinkKind) {
			t.Fatalf("ParseLinkKind(%q) = %v, want ErrBadLinkKind", s, err)
		}
	}
}

func TestApplyExplicitDefaults(t *testing.T) {
	m, err := Parse([]byte("source: main.zig\nkind: dynamic\nsoname: true\nlog: off\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := t.TempDir()
	b := zig.New().
		Host(cargo.Context{OutDir: out, Profile: "debug"}).
		NativeTarget().
		AsStatic().
		Soname(false).
		Log(zig.LogStrict)
	m.Apply(b)

	args, err := b.Args()
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	want := []string{
		"build-lib", "-dynamic", "-femit-bin=" + filepath.Join(out, "libmain") + ".so", "-fsoname=libmain.so",
		"--cache-dir", out, "-O", "Debug", "main.zig",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}
