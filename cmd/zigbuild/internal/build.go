package internal

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goplus/zigbuild/internal/manifest"
	"github.com/goplus/zigbuild/internal/toolchain"
	"github.com/goplus/zigbuild/pkgs/buildsys/zig"
	"github.com/goplus/zigbuild/pkgs/cargo"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build [source.zig]",
	Short: "Announce link directives and hand the process to zig",
	Long: `Build prints the cargo:rustc-link-search, cargo:rustc-link-lib and
cargo:rustc-rerun-if-changed directives, then replaces this process with
"zig build-lib". Without a source file (argument or manifest) it does nothing.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runBuild,
}

func init() {
	addBuildFlags(buildCmd.Flags())
	buildCmd.Flags().Bool("spawn", false, "Run zig as a child and exit with its status instead of replacing the process")
	buildCmd.Flags().String("min-zig", "", "Fail unless the installed zig is at least this version")
	rootCmd.AddCommand(buildCmd)
}

func addBuildFlags(fs *pflag.FlagSet) {
	fs.String("manifest", "", "Manifest file (default "+manifest.FileName+" if present)")
	fs.String("name", "", "Library name (default: source file stem)")
	fs.String("out-dir", "", "Output and cache directory (default: $OUT_DIR)")
	fs.Bool("static", false, "Build a static library instead of a dynamic one")
	fs.String("opt", "", "Optimization level: fast, safe or small (default: from $PROFILE)")
	fs.String("target", "", `Zig target triple, "host" to derive it from $TARGET, "native" to let zig choose`)
	fs.Bool("no-soname", false, "Do not override the SONAME")
	fs.String("dylib-token", "", "Link kind announced for dynamic libraries (default dylib)")
	fs.String("log", "", "Diagnostic log file mode: off, best-effort or strict")
	fs.String("log-file", "", "Diagnostic log path (default: <out-dir>/logs.txt)")
	fs.StringSlice("flag", nil, "Extra flag passed to zig, repeatable")
	fs.String("compiler", "zig", "Zig executable")
}

func bindFlags(cmd *cobra.Command, args []string) error {
	return cfg.BindPFlags(cmd.Flags())
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger(cfg)
	b, m, err := newBuild(cfg, args, logger)
	if err != nil {
		return err
	}
	b.Spawn(cfg.GetBool("spawn"))

	ctx := context.Background()
	minZig := cfg.GetString("min-zig")
	if minZig == "" && m != nil {
		minZig = m.MinZigVersion
	}
	if minZig != "" {
		have, err := toolchain.Version(ctx, cfg.GetString("compiler"))
		if err != nil {
			return err
		}
		if err := toolchain.Require(have, minZig); err != nil {
			return err
		}
		logger.Debug("zig version ok", "have", have, "min", minZig)
	}
	return b.Finish(ctx)
}

// newBuild configures a Build from the manifest, then flags and ZIGBUILD_*
// variables, then the positional source argument. Later sources win.
func newBuild(v *viper.Viper, args []string, logger hclog.Logger) (*zig.Build, *manifest.Manifest, error) {
	b := zig.New().Host(cargo.FromEnv()).Logger(logger)

	m, err := loadManifest(v.GetString("manifest"))
	if err != nil {
		return nil, nil, err
	}
	if m != nil {
		m.Apply(b)
	}

	if name := v.GetString("name"); name != "" {
		b.LibName(name)
	}
	if dir := v.GetString("out-dir"); dir != "" {
		b.OutDir(dir)
	}
	if v.IsSet("static") {
		if v.GetBool("static") {
			b.AsStatic()
		} else {
			b.AsDynamic()
		}
	}
	if s := v.GetString("opt"); s != "" {
		opt, err := manifest.ParseOpt(s)
		if err != nil {
			return nil, nil, err
		}
		b.Optimization(opt)
	}
	if t := v.GetString("target"); t != "" {
		manifest.ApplyTarget(b, t)
	}
	if v.IsSet("no-soname") {
		b.Soname(!v.GetBool("no-soname"))
	}
	if tok := v.GetString("dylib-token"); tok != "" {
		kind, err := manifest.ParseLinkKind(tok)
		if err != nil {
			return nil, nil, err
		}
		b.DylibToken(kind)
	}
	if s := v.GetString("log"); s != "" {
		mode, err := manifest.ParseLogMode(s)
		if err != nil {
			return nil, nil, err
		}
		b.Log(mode)
	}
	if p := v.GetString("log-file"); p != "" {
		b.LogFile(p)
	}
	b.Flags(v.GetStringSlice("flag")...)
	if c := v.GetString("compiler"); c != "" {
		b.Compiler(c)
	}
	if len(args) > 0 {
		b.File(args[0])
	}
	return b, m, nil
}

// loadManifest loads path, or manifest.FileName when path is empty and the
// file exists. It returns nil when there is no manifest.
func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		if _, err := os.Stat(manifest.FileName); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil
			}
			return nil, errors.Wrap(err, "failed to stat manifest")
		}
		path = manifest.FileName
	}
	return manifest.Load(path)
}
