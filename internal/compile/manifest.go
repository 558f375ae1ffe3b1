package compile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"weft/internal/trace"
)

// Manifest is the weft.toml project file: pipeline options plus trace
// configuration.
type Manifest struct {
	Compile ManifestCompile `toml:"compile"`
	Trace   ManifestTrace   `toml:"trace"`
}

type ManifestCompile struct {
	Fallback bool   `toml:"fallback"`
	Workers  int    `toml:"workers"`
	CacheDir string `toml:"cache_dir"`
}

type ManifestTrace struct {
	Level string `toml:"level"`
}

// DefaultManifest returns the settings used when no manifest exists.
func DefaultManifest() Manifest {
	return Manifest{
		Compile: ManifestCompile{Fallback: true},
	}
}

// LoadManifest reads a weft.toml. A missing file yields the defaults.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return Manifest{}, fmt.Errorf("compile: load manifest %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("compile: manifest %s has unknown key %s", path, undecoded[0])
	}
	return m, nil
}

// Options materializes pipeline options from the manifest; the tracer
// writes to w when tracing is configured.
func (m Manifest) Options(w *os.File) (Options, error) {
	opts := Options{
		Fallback: m.Compile.Fallback,
		Workers:  m.Compile.Workers,
		CacheDir: m.Compile.CacheDir,
	}
	level, err := trace.ParseLevel(m.Trace.Level)
	if err != nil {
		return Options{}, err
	}
	if level > trace.LevelOff && w != nil {
		opts.Tracer = trace.NewStreamTracer(w, level)
	}
	return opts, nil
}
