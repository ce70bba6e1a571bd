package lore

import (
	"os"
	"path/filepath"
	"strings"
)

var supportedExtensions = []string{".md", ".MD", ".mdown", ".markdown"}

//DefaultLoader is the default FileLoader implementation. It collects markdown
// files below the root, leaving out hidden and underscore directories and
// anything listed in Skip.
type DefaultLoader struct {
	Skip []string
}

// NewLoader returns default FileLoader implementation.
func NewLoader(skip ...string) *DefaultLoader {
	return &DefaultLoader{Skip: skip}
}

// Load loads files found in the base path for processing.
func (d DefaultLoader) Load(base string) ([]string, error) {
	skip := make(map[string]bool, len(d.Skip))
	for _, s := range d.Skip {
		skip[filepath.Clean(s)] = true
	}
	var rst []string
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case info.IsDir():
			name := info.Name()
			if path != base && (skip[filepath.Clean(path)] || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		case !HasExt(path, supportedExtensions...):
			return nil
		case strings.EqualFold(info.Name(), "README.md"):
			return nil
		}
		rst = append(rst, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rst, nil
}
