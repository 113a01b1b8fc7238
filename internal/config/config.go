// Package config discovers and decodes prim configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"prim/internal/format"
)

// Names searched in each directory, in order.
var FileNames = []string{".primrc.toml", "prim.toml"}

var (
	// ErrVersionMismatch is returned when the running tool does not satisfy
	// the `[prim] version` constraint of a config file.
	ErrVersionMismatch = errors.New("prim version does not satisfy config constraint")
	// ErrUnknownKey is returned for keys the schema does not define.
	ErrUnknownKey = errors.New("unknown config key")
)

// File is the decoded TOML document.
type File struct {
	Prim      ToolSection      `toml:"prim"`
	Format    format.Overrides `toml:"format"`
	Overrides []Override       `toml:"overrides"`
}

// ToolSection is the `[prim]` table.
type ToolSection struct {
	Version string `toml:"version"`
}

// Override applies Format to files matching any of Files.
type Override struct {
	Files  []string         `toml:"files"`
	Format format.Overrides `toml:"format"`
}

// Config is a loaded configuration file.
type Config struct {
	Path string // absolute path of the file
	Root string // directory the file lives in; override globs are relative to it
	File File

	constraint *semver.Constraints
}

// Find walks up from startDir to the filesystem root and returns the first
// config file it sees.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, true, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the config governing startDir.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load decodes and validates the config file at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var file File
	meta, err := toml.DecodeFile(abs, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return finish(abs, meta, file)
}

// Parse decodes an in-memory document as if it lived at path.
func Parse(path, data string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var file File
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return finish(abs, meta, file)
}

func finish(path string, meta toml.MetaData, file File) (*Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg, err := build(path, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func build(path string, file File) (*Config, error) {
	cfg := &Config{Path: path, Root: filepath.Dir(path), File: file}

	if c := strings.TrimSpace(file.Prim.Version); c != "" {
		constraint, err := semver.NewConstraint(c)
		if err != nil {
			return nil, fmt.Errorf("[prim].version: %w", err)
		}
		cfg.constraint = constraint
	}
	if err := file.Format.Apply(format.DefaultOptions()).Validate(); err != nil {
		return nil, fmt.Errorf("[format]: %w", err)
	}
	for i, ov := range file.Overrides {
		if len(ov.Files) == 0 {
			return nil, fmt.Errorf("[[overrides]] #%d: missing files", i+1)
		}
		for _, pattern := range ov.Files {
			if err := validatePattern(pattern); err != nil {
				return nil, fmt.Errorf("[[overrides]] #%d: %w", i+1, err)
			}
		}
		merged := file.Format.Merge(ov.Format)
		if err := merged.Apply(format.DefaultOptions()).Validate(); err != nil {
			return nil, fmt.Errorf("[[overrides]] #%d: %w", i+1, err)
		}
	}
	return cfg, nil
}

// CheckVersion reports ErrVersionMismatch when v violates the file's
// `[prim] version` constraint. A file without a constraint accepts any v.
func (c *Config) CheckVersion(v *semver.Version) error {
	if c == nil || c.constraint == nil || v == nil {
		return nil
	}
	if ok, errs := c.constraint.Validate(v); !ok {
		detail := c.File.Prim.Version
		if len(errs) > 0 {
			detail = errs[0].Error()
		}
		return fmt.Errorf("%s: %w: %s", c.Path, ErrVersionMismatch, detail)
	}
	return nil
}

// OverridesFor returns the `[format]` table layered with every
// `[[overrides]]` entry matching file, in declaration order.
func (c *Config) OverridesFor(file string) format.Overrides {
	if c == nil {
		return format.Overrides{}
	}
	ov := c.File.Format
	rel := c.relative(file)
	for _, entry := range c.File.Overrides {
		if matchAny(entry.Files, rel) {
			ov = ov.Merge(entry.Format)
		}
	}
	return ov
}

func (c *Config) relative(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(c.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(filepath.Base(abs))
	}
	return filepath.ToSlash(rel)
}
