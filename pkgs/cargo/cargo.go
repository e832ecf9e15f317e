// Package cargo speaks the host side of a Cargo build script: it reads the
// facts Cargo exports to build scripts and formats the directives Cargo scans
// from their standard output.
package cargo

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// Environment variables set by Cargo for build scripts.
const (
	EnvOutDir  = "OUT_DIR"
	EnvTarget  = "TARGET"
	EnvProfile = "PROFILE"
)

var (
	ErrMissingOutDir  = errors.New("cargo: OUT_DIR (build output directory) is not set")
	ErrMissingTarget  = errors.New("cargo: TARGET (target platform triple) is not set")
	ErrMissingProfile = errors.New("cargo: PROFILE (build profile) is not set")
)

// Context carries the facts the host build system provides. An empty field
// means the host did not supply it; reading it through the accessor fails.
type Context struct {
	OutDir  string
	Target  string
	Profile string
}

// FromEnv reads the build-script environment of the current process.
func FromEnv() Context {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the build-script environment through lookup.
func FromLookup(lookup func(key string) (string, bool)) Context {
	var c Context
	if v, ok := lookup(EnvOutDir); ok {
		c.OutDir = v
	}
	if v, ok := lookup(EnvTarget); ok {
		c.Target = v
	}
	if v, ok := lookup(EnvProfile); ok {
		c.Profile = v
	}
	return c
}

// OutDirOrErr returns the host output directory.
func (c Context) OutDirOrErr() (string, error) {
	if c.OutDir == "" {
		return "", ErrMissingOutDir
	}
	return c.OutDir, nil
}

// TargetOrErr returns the host target triple, e.g. x86_64-unknown-linux-gnu.
func (c Context) TargetOrErr() (string, error) {
	if c.Target == "" {
		return "", ErrMissingTarget
	}
	return c.Target, nil
}

// ProfileOrErr returns the host build profile ("debug" or "release").
func (c Context) ProfileOrErr() (string, error) {
	if c.Profile == "" {
		return "", ErrMissingProfile
	}
	return c.Profile, nil
}

// LinkKind is the library kind named in a rustc-link-lib directive.
type LinkKind string

const (
	LinkStatic LinkKind = "static"
	LinkDylib  LinkKind = "dylib"
	LinkDynlib LinkKind = "dynlib"
)

// IsDynamic reports whether k names a dynamic library.
func (k LinkKind) IsDynamic() bool {
	return k == LinkDylib || k == LinkDynlib
}

// LinkSearch returns the directive adding dir to the native library search path.
func LinkSearch(dir string) string {
	return "cargo:rustc-link-search=native=" + dir
}

// LinkLib returns the directive linking the library name as kind.
func LinkLib(kind LinkKind, name string) string {
	return fmt.Sprintf("cargo:rustc-link-lib=%s=%s", kind, name)
}

// RerunIfChanged returns the directive asking Cargo to rerun the build
// script whenever path changes.
func RerunIfChanged(path string) string {
	return "cargo:rustc-rerun-if-changed=" + path
}
