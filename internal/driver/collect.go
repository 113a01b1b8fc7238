package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoSourceFiles is returned when the given paths contain no files with a
// supported extension.
var ErrNoSourceFiles = errors.New("no source files found")

// Extensions lists the file extensions prim formats.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

// skippedDirs are not descended into while collecting.
var skippedDirs = map[string]bool{".git": true, ".hg": true, "node_modules": true}

// IsSource reports whether path has a supported extension.
func IsSource(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// CollectFiles expands paths into a sorted, de-duplicated list of source
// files. Directories are walked recursively; a file named explicitly is
// kept only if IsSource accepts it.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					if path != p && skippedDirs[d.Name()] {
						return filepath.SkipDir
					}
					return nil
				}
				if IsSource(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if IsSource(p) {
			addFile(p)
		}
	}

	slices.Sort(files)
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	return files, nil
}
