//go:build windows

package delegate

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"
)

// execProcess emulates process replacement: Windows has no exec(2), so the
// child is spawned and the parent exits with the child's status.
func execProcess(binary string, argv, env []string, logger hclog.Logger) error {
	logger.Debug("exec() unavailable, spawning")
	p := &Process{mode: Spawn, logger: logger, exit: os.Exit}
	return p.spawn(context.Background(), binary, argv[1:], env)
}
