package lore

import (
	"path/filepath"
	"strings"
)

//HasExt checks if the file has any matching extension
func HasExt(file string, exts ...string) bool {
	fext := filepath.Ext(file)
	for _, ext := range exts {
		if ext == fext {
			return true
		}
	}
	return false
}

// cssPath returns the relative prefix from the directory of file back to
// root: "." for files at the root, "../.." two directories down. Files
// outside of root are treated as one directory down.
func cssPath(root, file string) string {
	rel, err := filepath.Rel(absPath(root), filepath.Dir(absPath(file)))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ".."
	}
	if rel == "." {
		return "."
	}
	depth := len(strings.Split(filepath.ToSlash(rel), "/"))
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

// withExt replaces the extension of path.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
