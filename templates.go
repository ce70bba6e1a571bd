package lore

import (
	"embed"
	"html/template"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/unknwon/com"
)

//go:embed templates/*.html
var builtin embed.FS

var defalutTplExtensions = []string{".html", ".tpl", ".tmpl"}

// loadTemplates parses the built in templates and then, when a theme is
// set, every template of _themes/<theme>. A theme template replaces the
// built in one of the same name.
func loadTemplates(root, theme string) (*template.Template, error) {
	tpl, err := template.New("lore").ParseFS(builtin, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if theme == "" {
		return tpl, nil
	}
	dir := filepath.Join(root, ThemeDir, theme)
	if !com.IsDir(dir) {
		return nil, &os.PathError{Op: "load theme", Path: dir, Err: os.ErrNotExist}
	}
	return tpl, loadTheme(dir, tpl)
}

func loadTheme(dir string, tpl *template.Template) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !HasExt(path, defalutTplExtensions...) {
			return nil
		}
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		n := filepath.ToSlash(strings.TrimPrefix(path, dir))
		_, err = tpl.New(strings.TrimPrefix(n, "/")).Parse(string(b))
		return err
	})
}
