package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/goplus/zigbuild/internal/logging"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set with -ldflags "-X github.com/goplus/zigbuild/cmd/zigbuild/internal.Version=...".
var Version = "devel"

// cfg merges command-line flags with ZIGBUILD_* environment variables.
var cfg = newConfig()

var rootCmd = &cobra.Command{
	Use:   "zigbuild",
	Short: "zigbuild compiles a Zig source file into a library for a Cargo build script",
	Long: `zigbuild compiles a Zig source file into a static or dynamic library by
handing the build script's process over to "zig build-lib", after printing
the cargo:rustc-link-* directives Cargo needs to link the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Diagnostic log level on stderr (trace, debug, info, warn, error)")
	_ = cfg.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ZIGBUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newLogger(v *viper.Viper) hclog.Logger {
	level := v.GetString("log-level")
	if level == "" {
		level = logging.Level()
	}
	return logging.New("zigbuild", level, os.Stderr)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zigbuild:", err)
		os.Exit(1)
	}
}
