package zig

import (
	"github.com/cockroachdb/errors"
	"github.com/goplus/zigbuild/pkgs/cargo"
)

// linkKind is the kind named in the rustc-link-lib directive. It always
// agrees with the emit-mode flag passed to zig: a dynamic build only
// announces dylib or dynlib.
func (b *Build) linkKind() (cargo.LinkKind, error) {
	if b.kind == Static {
		return cargo.LinkStatic, nil
	}
	if !b.dylibToken.IsDynamic() {
		return "", errors.Wrapf(ErrBadLinkKind, "%q", b.dylibToken)
	}
	return b.dylibToken, nil
}

// Directives returns the link-search, link-lib and rerun-if-changed lines,
// in the order they are announced.
func (b *Build) Directives() ([]string, error) {
	outDir, err := b.ResolveOutDir()
	if err != nil {
		return nil, err
	}
	kind, err := b.linkKind()
	if err != nil {
		return nil, err
	}
	return []string{
		cargo.LinkSearch(outDir),
		cargo.LinkLib(kind, b.ResolveLibName()),
		cargo.RerunIfChanged(b.file),
	}, nil
}

// Args returns the `zig` arguments:
//
//	build-lib -<static|dynamic> -femit-bin=<emit>.<suffix> [-fsoname=lib<name>.<suffix>]
//	    --cache-dir <out dir> [-target <triple>] -O <mode> [flags...] <source>
func (b *Build) Args() ([]string, error) {
	outDir, err := b.ResolveOutDir()
	if err != nil {
		return nil, err
	}
	emit, err := b.EmitPath()
	if err != nil {
		return nil, err
	}
	triple, withTarget, err := b.ResolveTarget()
	if err != nil {
		return nil, err
	}
	mode, err := b.ResolveMode()
	if err != nil {
		return nil, err
	}
	suffix := b.kind.Suffix()

	args := []string{
		"build-lib",
		b.kind.zigFlag(),
		"-femit-bin=" + emit + "." + suffix,
	}
	if b.soname {
		args = append(args, "-fsoname=lib"+b.ResolveLibName()+"."+suffix)
	}
	args = append(args, "--cache-dir", outDir)
	if withTarget {
		args = append(args, "-target", triple)
	}
	args = append(args, "-O", mode)
	args = append(args, b.flags...)
	args = append(args, b.file)
	return args, nil
}
