package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"

	"prim/internal/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "prim.toml"), "")
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(deep)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != filepath.Join(root, "prim.toml") {
		t.Fatalf("Find = %q", got)
	}
}

func TestFindPrefersRcFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "prim.toml"), "")
	writeFile(t, filepath.Join(root, ".primrc.toml"), "")

	got, ok, err := Find(root)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if filepath.Base(got) != ".primrc.toml" {
		t.Fatalf("Find = %q, want .primrc.toml", got)
	}
}

func TestNearestConfigWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "prim.toml"), "[format]\nprintWidth = 100\n")
	writeFile(t, filepath.Join(root, "sub", "prim.toml"), "[format]\nprintWidth = 60\n")

	cfg, ok, err := Discover(filepath.Join(root, "sub"))
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if w := cfg.File.Format.PrintWidth; w == nil || *w != 60 {
		t.Fatalf("printWidth = %v, want 60", w)
	}
}

func TestLoadDecodesFormatTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".primrc.toml")
	writeFile(t, path, `
[prim]
version = ">= 0.1.0-0"

[format]
printWidth = 100
singleQuote = true
trailingComma = "es5"
arrowParens = "avoid"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.OverridesFor(filepath.Join(dir, "x.js")).Apply(format.DefaultOptions())
	if opts.PrintWidth != 100 || !opts.SingleQuote || opts.TrailingComma != format.TrailingCommaES5 || opts.ArrowParens != format.ArrowParensAvoid {
		t.Fatalf("options = %+v", opts)
	}
	if opts.TabWidth != 2 || !opts.Semi {
		t.Fatalf("unset options lost their defaults: %+v", opts)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "[format]\nprintWidht = 3\n", ErrUnknownKey},
		{"unknown table", "[lint]\nx = 1\n", ErrUnknownKey},
		{"bad width", "[format]\nprintWidth = 0\n", format.ErrInvalidOption},
		{"bad override", "[[overrides]]\nfiles = [\"*.ts\"]\n[overrides.format]\ntabWidth = -1\n", format.ErrInvalidOption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prim.toml")
			writeFile(t, path, tc.content)
			_, err := Load(path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"syntax":            "[format\n",
		"bad enum":          "[format]\ntrailingComma = \"some\"\n",
		"constraint":        "[prim]\nversion = \"banana\"\n",
		"override no files": "[[overrides]]\n[overrides.format]\nsemi = false\n",
		"bad glob":          "[[overrides]]\nfiles = [\"[\"]\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "prim.toml")
		writeFile(t, path, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCheckVersion(t *testing.T) {
	cfg, err := Parse(filepath.Join(t.TempDir(), "prim.toml"), "[prim]\nversion = \">= 1.2, < 2\"\n")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.CheckVersion(semver.MustParse("1.4.0")); err != nil {
		t.Fatalf("1.4.0 rejected: %v", err)
	}
	if err := cfg.CheckVersion(semver.MustParse("2.0.0")); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("2.0.0: err = %v, want ErrVersionMismatch", err)
	}

	open, err := Parse(filepath.Join(t.TempDir(), "prim.toml"), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := open.CheckVersion(semver.MustParse("0.0.1")); err != nil {
		t.Fatalf("unconstrained config rejected version: %v", err)
	}
}

func TestOverridesFor(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse(filepath.Join(dir, "prim.toml"), `
[format]
semi = true
tabWidth = 4

[[overrides]]
files = ["*.ts"]
[overrides.format]
semi = false

[[overrides]]
files = ["legacy/**"]
[overrides.format]
tabWidth = 8
semi = true
`)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		file     string
		semi     bool
		tabWidth int
	}{
		{"main.js", true, 4},
		{"src/app.ts", false, 4},
		{"legacy/old.js", true, 8},
		{"legacy/deep/x.ts", true, 8},
	}
	for _, tc := range cases {
		opts := cfg.OverridesFor(filepath.Join(dir, filepath.FromSlash(tc.file))).Apply(format.DefaultOptions())
		if opts.Semi != tc.semi || opts.TabWidth != tc.tabWidth {
			t.Errorf("%s: semi=%v tabWidth=%d, want semi=%v tabWidth=%d", tc.file, opts.Semi, opts.TabWidth, tc.semi, tc.tabWidth)
		}
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if err := cfg.CheckVersion(semver.MustParse("1.0.0")); err != nil {
		t.Fatal(err)
	}
	if ov := cfg.OverridesFor("a.js"); ov != (format.Overrides{}) {
		t.Fatalf("nil config produced overrides %+v", ov)
	}
}
