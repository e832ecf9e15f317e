// Package toolchain inspects the installed zig compiler.
package toolchain

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"
)

var ErrTooOld = errors.New("zig is older than required")

// Version runs `<compiler> version` and returns the reported version in
// canonical semver form, e.g. "v0.13.0" or "v0.14.0-dev.1+abc".
func Version(ctx context.Context, compiler string) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, compiler, "version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "failed to run %s version", compiler)
	}
	return Canonical(stdout.String())
}

// Canonical normalizes a zig version string to semver.
func Canonical(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", errors.Newf("invalid zig version %q", strings.TrimSpace(raw))
	}
	return semver.Canonical(v) + semver.Build(v), nil
}

// Require fails with ErrTooOld when have is older than min. Both are
// canonicalized first; an empty min accepts anything.
func Require(have, min string) error {
	if min == "" {
		return nil
	}
	h, err := Canonical(have)
	if err != nil {
		return err
	}
	m, err := Canonical(min)
	if err != nil {
		return err
	}
	if semver.Compare(h, m) < 0 {
		return errors.Wrapf(ErrTooOld, "have %s, need %s", h, m)
	}
	return nil
}
