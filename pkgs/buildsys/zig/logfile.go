package zig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const logSeparator = "--------------------------------------"

// logPath returns the diagnostic log path.
func (b *Build) logPath(outDir string) string {
	if b.logFile != "" {
		return b.logFile
	}
	return filepath.Join(outDir, "logs.txt")
}

// writeLog appends a timestamped block followed by lines to the diagnostic
// log. Failures only surface in LogStrict mode.
func (b *Build) writeLog(outDir string, lines []string) error {
	if b.logMode == LogOff {
		return nil
	}
	err := b.appendLog(b.logPath(outDir), lines)
	if err != nil && b.logMode == LogBestEffort {
		b.logger.Warn("diagnostic log skipped", "error", err)
		return nil
	}
	return err
}

func (b *Build) appendLog(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer f.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\nT:%s\n%s\n\n", logSeparator,
		b.now().Format("2006-01-02 15:04:05.999999999 -07:00"), logSeparator)
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return errors.Wrap(err, "failed to write log file")
	}
	return f.Close()
}
