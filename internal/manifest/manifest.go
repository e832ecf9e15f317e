// Package manifest reads zigbuild.yaml, which describes the library a build
// script compiles:
//
//	source: src/main.zig
//	name: main
//	kind: static
//	optimize: fast
//	target: host
//	soname: true
//	flags: [-lc]
//	log: best-effort
//	min_zig_version: v0.11.0
package manifest

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goplus/zigbuild/pkgs/buildsys/zig"
	"gopkg.in/yaml.v2"
)

// FileName is the manifest looked up in the working directory.
const FileName = "zigbuild.yaml"

type Manifest struct {
	Source        string   `yaml:"source"`
	Name          string   `yaml:"name"`
	Kind          string   `yaml:"kind"`
	Optimize      string   `yaml:"optimize"`
	Target        string   `yaml:"target"`
	OutDir        string   `yaml:"out_dir"`
	Soname        *bool    `yaml:"soname"`
	DylibToken    string   `yaml:"dylib_token"`
	Flags         []string `yaml:"flags"`
	Log           string   `yaml:"log"`
	LogFile       string   `yaml:"log_file"`
	MinZigVersion string   `yaml:"min_zig_version"`
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}
	if _, err := ParseKind(m.Kind); err != nil {
		return nil, err
	}
	if _, err := ParseOpt(m.Optimize); err != nil {
		return nil, err
	}
	if _, err := ParseLogMode(m.Log); err != nil {
		return nil, err
	}
	if _, err := ParseLinkKind(m.DylibToken); err != nil {
		return nil, err
	}
	return &m, nil
}

// Apply configures b from the manifest. Empty fields leave b untouched.
func (m *Manifest) Apply(b *zig.Build) *zig.Build {
	if m.Source != "" {
		b.File(m.Source)
	}
	if m.Name != "" {
		b.LibName(m.Name)
	}
	if m.Kind != "" {
		if kind, _ := ParseKind(m.Kind); kind == zig.Static {
			b.AsStatic()
		} else {
			b.AsDynamic()
		}
	}
	if opt, _ := ParseOpt(m.Optimize); opt != 0 {
		b.Optimization(opt)
	}
	if m.Target != "" {
		ApplyTarget(b, m.Target)
	}
	if m.OutDir != "" {
		b.OutDir(m.OutDir)
	}
	if m.Soname != nil {
		b.Soname(*m.Soname)
	}
	if m.DylibToken != "" {
		kind, _ := ParseLinkKind(m.DylibToken)
		b.DylibToken(kind)
	}
	b.Flags(m.Flags...)
	if m.Log != "" {
		mode, _ := ParseLogMode(m.Log)
		b.Log(mode)
	}
	if m.LogFile != "" {
		b.LogFile(m.LogFile)
	}
	return b
}
