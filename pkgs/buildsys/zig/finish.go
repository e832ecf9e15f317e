package zig

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goplus/zigbuild/internal/delegate"
)

// Finish announces the link directives and hands the process to zig.
//
// Without a source file Finish does nothing. A source file that is not a
// regular file fails before anything is printed, as does any missing host
// fact. With the default runner Finish does not return on success.
func (b *Build) Finish(ctx context.Context) error {
	if b.file == "" {
		b.logger.Debug("no source file, skipping")
		return nil
	}
	if fi, err := os.Stat(b.file); err != nil || !fi.Mode().IsRegular() {
		return errors.Wrapf(ErrSourceNotFound, "%s", b.file)
	}

	outDir, err := b.ResolveOutDir()
	if err != nil {
		return err
	}
	directives, err := b.Directives()
	if err != nil {
		return err
	}
	args, err := b.Args()
	if err != nil {
		return err
	}
	b.logger.Debug("resolved library", "name", b.ResolveLibName(), "kind", b.kind, "out_dir", outDir)

	if err := b.writeLog(outDir, directives[:2]); err != nil {
		return err
	}
	for _, d := range directives {
		if _, err := fmt.Fprintln(b.stdout, d); err != nil {
			return errors.Wrap(err, "failed to announce directives")
		}
	}
	return b.delegator().Run(ctx, b.compiler, args)
}

// MustFinish is like Finish but panics on error.
func (b *Build) MustFinish(ctx context.Context) {
	if err := b.Finish(ctx); err != nil {
		panic(err)
	}
}

func (b *Build) delegator() Runner {
	if b.runner != nil {
		return b.runner
	}
	mode := delegate.Exec
	if b.spawn {
		mode = delegate.Spawn
	}
	return delegate.New(mode, b.logger)
}
