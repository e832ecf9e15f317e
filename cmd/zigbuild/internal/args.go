package internal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var argsCmd = &cobra.Command{
	Use:   "args [source.zig]",
	Short: "Print the directives and zig command line without running zig",
	Long: `Args resolves the build exactly like "zigbuild build" and prints the
directives followed by the zig command line, without delegating to zig.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runArgs,
}

func init() {
	addBuildFlags(argsCmd.Flags())
	rootCmd.AddCommand(argsCmd)
}

func runArgs(cmd *cobra.Command, args []string) error {
	b, _, err := newBuild(cfg, args, newLogger(cfg))
	if err != nil {
		return err
	}
	if b.SourceFile() == "" {
		return errors.New("no source file: pass one or set it in the manifest")
	}
	directives, err := b.Directives()
	if err != nil {
		return err
	}
	zigArgs, err := b.Args()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range directives {
		fmt.Fprintln(out, d)
	}
	fmt.Fprintln(out, cfg.GetString("compiler")+" "+strings.Join(zigArgs, " "))
	return nil
}
