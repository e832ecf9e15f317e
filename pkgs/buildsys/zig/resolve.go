package zig

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrSourceNotFound = errors.New("zig: source file not found")
	ErrBadTriple      = errors.New("zig: host target triple must have four components")
	ErrUnknownProfile = errors.New("zig: unknown build profile")
	ErrBadLinkKind    = errors.New("zig: dynamic libraries link as dylib or dynlib")
)

// ResolveLibName returns the explicit library name, or the source file name
// up to its first '.'. It panics when neither is set.
func (b *Build) ResolveLibName() string {
	if b.libName != "" {
		return b.libName
	}
	if b.file == "" {
		panic("zig: library name requires a source file")
	}
	return Stem(b.file)
}

// Stem returns the last element of path up to its first '.':
// "src/foo.release.zig" yields "foo".
func Stem(path string) string {
	stem, _, _ := strings.Cut(filepath.Base(path), ".")
	return stem
}

// ResolveOutDir returns the explicit output directory or the host's.
func (b *Build) ResolveOutDir() (string, error) {
	if b.outDir != "" {
		return b.outDir, nil
	}
	return b.hostContext().OutDirOrErr()
}

// EmitPath returns <out dir>/lib<name>, without a file-type suffix.
func (b *Build) EmitPath() (string, error) {
	outDir, err := b.ResolveOutDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(outDir, "lib"+b.ResolveLibName()), nil
}

// ResolveTarget returns the zig target triple. ok is false when zig should
// pick its default target.
func (b *Build) ResolveTarget() (triple string, ok bool, err error) {
	switch b.target {
	case targetNative:
		return "", false, nil
	case targetExplicit:
		return b.triple, true, nil
	}
	host, err := b.hostContext().TargetOrErr()
	if err != nil {
		return "", false, err
	}
	triple, err = DeriveTriple(host)
	if err != nil {
		return "", false, err
	}
	return triple, true, nil
}

// DeriveTriple turns a four-component host triple arch-vendor-os-abi into
// the zig form arch-os-abi. Other shapes are rejected.
func DeriveTriple(host string) (string, error) {
	parts := strings.Split(host, "-")
	if len(parts) != 4 {
		return "", errors.Wrapf(ErrBadTriple, "%q has %d", host, len(parts))
	}
	return parts[0] + "-" + parts[2] + "-" + parts[3], nil
}

// ResolveMode returns the zig optimization mode: the explicit level if set,
// otherwise the one matching the host profile.
func (b *Build) ResolveMode() (string, error) {
	if mode := b.opt.Mode(); mode != "" {
		return mode, nil
	}
	profile, err := b.hostContext().ProfileOrErr()
	if err != nil {
		return "", err
	}
	return ProfileMode(profile)
}

// ProfileMode maps a host build profile to a zig optimization mode.
func ProfileMode(profile string) (string, error) {
	switch profile {
	case "release":
		return ModeReleaseSafe, nil
	case "debug":
		return ModeDebug, nil
	}
	// the host only ever reports debug or release
	return "", errors.Mark(errors.AssertionFailedf("invalid build profile %q", profile), ErrUnknownProfile)
}
