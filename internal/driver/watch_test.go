package driver

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestWatchHelpers(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "", "notes.md": ""})

	batch := []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "gone.js"),
		filepath.Join(root, "notes.md"),
		filepath.Join(root, "prim.toml"),
	}
	if got := existing(batch); !slices.Equal(got, []string{filepath.Join(root, "a.js")}) {
		t.Fatalf("existing = %v", got)
	}
	if !isConfigFile(filepath.Join(root, ".primrc.toml")) || isConfigFile(filepath.Join(root, "a.toml")) {
		t.Fatal("isConfigFile misclassified")
	}
}
