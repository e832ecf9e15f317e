package manifest

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goplus/zigbuild/pkgs/buildsys/zig"
	"github.com/goplus/zigbuild/pkgs/cargo"
)

// ParseKind parses "static", "dynamic" or "" (dynamic).
func ParseKind(s string) (zig.Kind, error) {
	switch strings.ToLower(s) {
	case "", "dynamic", "dylib", "shared":
		return zig.Dynamic, nil
	case "static":
		return zig.Static, nil
	}
	return zig.Dynamic, errors.Newf("unknown library kind %q", s)
}

// ParseOpt parses "fast", "safe", "small" or "" (follow the profile).
func ParseOpt(s string) (zig.Opt, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "fast", "releasefast":
		return zig.Fast, nil
	case "safe", "releasesafe":
		return zig.Safe, nil
	case "small", "releasesmall":
		return zig.Small, nil
	}
	return 0, errors.Newf("unknown optimization level %q", s)
}

// ParseLogMode parses "off", "best-effort", "strict" or "" (off).
func ParseLogMode(s string) (zig.LogMode, error) {
	switch strings.ToLower(s) {
	case "", "off":
		return zig.LogOff, nil
	case "best-effort", "on":
		return zig.LogBestEffort, nil
	case "strict":
		return zig.LogStrict, nil
	}
	return zig.LogOff, errors.Newf("unknown log mode %q", s)
}

// ParseLinkKind parses the link kind announced for dynamic libraries:
// "dylib", "dynlib" or "" (dylib). A static kind would contradict the
// -dynamic emit flag and is rejected.
func ParseLinkKind(s string) (cargo.LinkKind, error) {
	if s == "" {
		return cargo.LinkDylib, nil
	}
	if k := cargo.LinkKind(strings.ToLower(s)); k.IsDynamic() {
		return k, nil
	}
	return cargo.LinkDylib, errors.Wrapf(zig.ErrBadLinkKind, "%q", s)
}

// ApplyTarget configures target selection: "" or "host" derives it from the
// host triple, "native" lets zig choose, anything else is a zig triple.
func ApplyTarget(b *zig.Build, target string) {
	switch target {
	case "", "host":
		b.HostTarget()
	case "native":
		b.NativeTarget()
	default:
		b.Target(target)
	}
}

