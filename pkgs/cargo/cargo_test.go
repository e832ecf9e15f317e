package cargo

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestFromLookup(t *testing.T) {
	env := map[string]string{
		EnvOutDir:  "/tmp/out",
		EnvTarget:  "x86_64-unknown-linux-gnu",
		EnvProfile: "release",
	}
	c := FromLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	want := Context{OutDir: "/tmp/out", Target: "x86_64-unknown-linux-gnu", Profile: "release"}
	if c != want {
		t.Fatalf("FromLookup = %+v, want %+v", c, want)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvOutDir, "/var/out")
	t.Setenv(EnvTarget, "aarch64-apple-darwin-none")
	t.Setenv(EnvProfile, "debug")

	c := FromEnv()
	if got, err := c.OutDirOrErr(); err != nil || got != "/var/out" {
		t.Fatalf("OutDirOrErr = %q, %v", got, err)
	}
	if got, err := c.TargetOrErr(); err != nil || got != "aarch64-apple-darwin-none" {
		t.Fatalf("TargetOrErr = %q, %v", got, err)
	}
	if got, err := c.ProfileOrErr(); err != nil || got != "debug" {
		t.Fatalf("ProfileOrErr = %q, %v", got, err)
	}
}

func TestMissingFacts(t *testing.T) {
	var c Context
	if _, err := c.OutDirOrErr(); !errors.Is(err, ErrMissingOutDir) {
		t.Fatalf("OutDirOrErr err = %v, want %v", err, ErrMissingOutDir)
	}
	if _, err := c.TargetOrErr(); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("TargetOrErr err = %v, want %v", err, ErrMissingTarget)
	}
	if _, err := c.ProfileOrErr(); !errors.Is(err, ErrMissingProfile) {
		t.Fatalf("ProfileOrErr err = %v, want %v", err, ErrMissingProfile)
	}
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{LinkSearch("/tmp/out"), "cargo:rustc-link-search=native=/tmp/out"},
		{LinkLib(LinkStatic, "main"), "cargo:rustc-link-lib=static=main"},
		{LinkLib(LinkDylib, "main"), "cargo:rustc-link-lib=dylib=main"},
		{LinkLib(LinkDynlib, "main"), "cargo:rustc-link-lib=dynlib=main"},
		{RerunIfChanged("./src/main.zig"), "cargo:rustc-rerun-if-changed=./src/main.zig"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("directive = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestLinkKindIsDynamic(t *testing.T) {
	for k, want := range map[LinkKind]bool{
		LinkDylib:  true,
		LinkDynlib: true,
		LinkStatic: false,
		"bogus":    false,
		"":         false,
	} {
		if got := k.IsDynamic(); got != want {
			t.Errorf("%q.IsDynamic() = %v, want %v", k, got, want)
		}
	}
}
