package internal

import (
	"context"
	"fmt"

	"github.com/goplus/zigbuild/internal/toolchain"
	"github.com/spf13/cobra"
)

var versionCompiler string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the zigbuild version and the installed zig version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().StringVar(&versionCompiler, "compiler", "zig", "Zig executable")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "zigbuild %s\n", Version)

	zigVersion, err := toolchain.Version(context.Background(), versionCompiler)
	if err != nil {
		fmt.Fprintf(out, "zig: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "zig %s\n", zigVersion)
	return nil
}
