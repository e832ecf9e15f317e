//go:build !windows

package delegate

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sys/unix"
)

// execProcess replaces the current process with binary.
func execProcess(binary string, argv, env []string, logger hclog.Logger) error {
	logger.Debug("replacing process via exec()")
	err := unix.Exec(binary, argv, env)
	return errors.Wrapf(err, "exec %s failed", binary)
}
