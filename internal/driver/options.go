package driver

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"

	"prim/internal/config"
	"prim/internal/format"
	"prim/internal/version"
)

// OptionSource describes where per-file options come from.
type OptionSource struct {
	// Overrides hold command-line flags; they beat any config file.
	Overrides format.Overrides
	// ConfigPath names an explicit config file and disables discovery.
	ConfigPath string
	// NoConfig disables config files entirely.
	NoConfig bool
}

// resolver maps a path to its format options, discovering and caching
// config files per directory. Safe for concurrent use.
type resolver struct {
	src      OptionSource
	tool     *semver.Version
	explicit *config.Config

	mu    sync.Mutex
	byDir map[string]dirConfig
}

type dirConfig struct {
	cfg *config.Config
	err error
}

func newResolver(src OptionSource) (*resolver, error) {
	r := &resolver{src: src, byDir: make(map[string]dirConfig)}
	if v, err := version.Semver(); err == nil {
		r.tool = v
	}
	if src.ConfigPath != "" && !src.NoConfig {
		cfg, err := config.Load(src.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.CheckVersion(r.tool); err != nil {
			return nil, err
		}
		r.explicit = cfg
	}
	// invalid flags fail the run before any file is read
	if _, err := src.Overrides.Resolve(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return r, nil
}

// configFor returns the config governing path, or nil.
func (r *resolver) configFor(path string) (*config.Config, error) {
	if r.src.NoConfig {
		return nil, nil
	}
	if r.explicit != nil {
		return r.explicit, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)

	r.mu.Lock()
	defer r.mu.Unlock()
	if dc, ok := r.byDir[dir]; ok {
		return dc.cfg, dc.err
	}
	cfg, _, err := config.Discover(dir)
	if err == nil {
		err = cfg.CheckVersion(r.tool)
	}
	if err != nil {
		cfg = nil
	}
	r.byDir[dir] = dirConfig{cfg: cfg, err: err}
	return cfg, err
}

// options resolves defaults < config < flags for path.
func (r *resolver) options(path string) (format.Options, *config.Config, error) {
	cfg, err := r.configFor(path)
	if err != nil {
		return format.Options{}, nil, err
	}
	ov := cfg.OverridesFor(path).Merge(r.src.Overrides)
	opts, err := ov.Resolve()
	if err != nil {
		return format.Options{}, nil, err
	}
	return opts, cfg, nil
}

// ResolveOptions returns the options prim would use for path.
func ResolveOptions(path string, src OptionSource) (format.Options, error) {
	r, err := newResolver(src)
	if err != nil {
		return format.Options{}, err
	}
	opts, _, err := r.options(path)
	return opts, err
}
