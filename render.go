package lore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/ioutil"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unknwon/com"
)

//DefaultRenderer is the default Renderer implementation. It writes every
// page as a blog post and builds the travel page when the project has one.
type DefaultRenderer struct {
	config *Config
	rendr  *template.Template
	conv   Converter
	matter FrontMatter
	root   string
	log    *slog.Logger
	now    func() time.Time
}

//NewDefaultRenderer returns default Renderer implementation
func NewDefaultRenderer(log *slog.Logger) *DefaultRenderer {
	if log == nil {
		log = slog.Default()
	}
	return &DefaultRenderer{
		matter: NewYAML(),
		log:    log,
		now:    time.Now,
	}
}

// Before loads the configuration, templates and markdown converter of the
// project at root.
func (d *DefaultRenderer) Before(root string) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rendr, err := loadTemplates(root, cfg.Theme)
	if err != nil {
		return err
	}
	conv, err := NewConverter(cfg.Markdown.Engine, cfg.Markdown.CodeStyle)
	if err != nil {
		return err
	}
	d.config = cfg
	d.rendr = rendr
	d.conv = conv
	d.root = root
	return nil
}

// Config returns the configuration loaded by Before.
func (d *DefaultRenderer) Config() *Config {
	return d.config
}

// Render writes every page as a post, then the travel page when the travel
// directory exists.
func (d *DefaultRenderer) Render(ctx context.Context, root string, pages PageList) error {
	if d.config == nil {
		return errors.New("renderer used before Before")
	}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := d.outputFor(page.Path)
		if err := d.renderPost(ctx, page, out); err != nil {
			return fmt.Errorf("%s: %w", page.Path, err)
		}
	}
	if com.IsDir(d.travelDir()) {
		if _, err := d.BuildTravel(ctx); err != nil {
			return err
		}
	}
	return nil
}

// After copies the static entries of the configuration into the output
// directory. Nothing is copied when pages are written next to their sources.
func (d *DefaultRenderer) After(root string) error {
	if d.config == nil || d.config.Output == "" {
		return nil
	}
	out := d.outputDir()
	for _, s := range d.config.Static {
		src := filepath.Join(root, s)
		dest := filepath.Join(out, s)
		switch {
		case com.IsDir(src):
			// CopyDir refuses to write into an existing directory
			if err := os.RemoveAll(dest); err != nil {
				return err
			}
			if err := com.CopyDir(src, dest); err != nil {
				return err
			}
		case com.IsFile(src):
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return err
			}
			if err := com.Copy(src, dest); err != nil {
				return err
			}
		default:
			d.log.Warn("static entry not found", "path", src)
		}
	}
	return nil
}

// skipDirs lists the directories the loader must not descend into.
func (d *DefaultRenderer) skipDirs() []string {
	skip := []string{d.travelDir()}
	if d.config != nil && d.config.Output != "" {
		skip = append(skip, d.outputDir())
	}
	return skip
}

func (d *DefaultRenderer) travelDir() string {
	dir := DefaultTravelDir
	if d.config != nil {
		dir = d.config.Travel.Dir
	}
	return filepath.Join(d.root, dir)
}

func (d *DefaultRenderer) outputDir() string {
	return filepath.Join(d.root, d.config.Output)
}

// outputFor maps a source path to where its html goes: next to the source,
// or mirrored below the output directory.
func (d *DefaultRenderer) outputFor(src string) string {
	if d.config.Output == "" {
		return withExt(src, DefaultExt)
	}
	rel, err := filepath.Rel(absPath(d.root), absPath(src))
	if err != nil || strings.HasPrefix(rel, "..") {
		return withExt(src, DefaultExt)
	}
	return filepath.Join(d.outputDir(), withExt(rel, DefaultExt))
}

// readPage reads and splits a markdown file. Broken front matter is logged
// and the whole file is used as the body.
func (d *DefaultRenderer) readPage(path string) (*Page, error) {
	return readPage(d.matter, d.log, path)
}

func readPage(fm FrontMatter, log *slog.Logger, path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	front, body, err := fm.Parse(f)
	if err != nil {
		if !errors.Is(err, ErrInvalidFront) {
			return nil, err
		}
		log.Warn("failed to parse front matter", "path", path, "err", err)
		front = map[string]interface{}{}
	}
	b, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return &Page{Path: path, Body: b, Data: front, ModTime: stat.ModTime()}, nil
}

func (d *DefaultRenderer) execute(name string, data interface{}, out string) error {
	buf := &bytes.Buffer{}
	if err := d.rendr.ExecuteTemplate(buf, name, data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(out, buf.Bytes(), DefaultPerm)
}

//Rollback deletes the output directory of a failed build. Nothing is
// removed when pages are written next to their sources.
func (d *DefaultRenderer) Rollback(root string) {
	if d.config == nil || d.config.Output == "" {
		return
	}
	os.RemoveAll(filepath.Join(root, d.config.Output))
}
