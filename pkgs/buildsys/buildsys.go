package buildsys

import "context"

// LibraryBuilder captures what a library build helper offers a host build
// script: the directives it announces, the compiler invocation it issues and
// the finalization step that performs both.
type LibraryBuilder interface {
	// Where artifacts land.
	ResolveOutDir() (string, error)

	// Lines announced to the host build system, in order.
	Directives() ([]string, error)

	// Compiler arguments, without the executable.
	Args() ([]string, error)

	// Finish announces the directives and hands the process to the compiler.
	Finish(ctx context.Context) error
}
