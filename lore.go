package lore

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

//DefaultApp is the Generator used by New.
type DefaultApp struct {
	*DefaultLoader
	*Matter
	*DefaultRenderer
}

func newDefaultApp(log *slog.Logger) *DefaultApp {
	app := &DefaultApp{
		DefaultLoader:   NewLoader(),
		Matter:          NewYAML(),
		DefaultRenderer: NewDefaultRenderer(log),
	}
	app.DefaultRenderer.matter = app.Matter
	return app
}

// Load skips the travel and output directories of the loaded configuration.
func (a *DefaultApp) Load(root string) ([]string, error) {
	a.DefaultLoader.Skip = a.DefaultRenderer.skipDirs()
	return a.DefaultLoader.Load(root)
}

// App runs a Generator over a project.
type App struct {
	gene Generator
	log  *slog.Logger
}

// New returns an App using the default generator.
func New(log *slog.Logger) *App {
	return NewApp(newDefaultApp(log), log)
}

// NewApp returns an App running g. A nil log means slog.Default().
func NewApp(g Generator, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{gene: g, log: log}
}

type rollbacker interface {
	Rollback(root string)
}

// Run builds the project at root. Files are read and split concurrently;
// rendering starts once every file has been read.
func (g *App) Run(ctx context.Context, root string) error {
	if err := g.gene.Before(root); err != nil {
		return err
	}
	files, err := g.gene.Load(root)
	if err != nil {
		return err
	}
	g.log.Debug("loaded files", "root", root, "count", len(files))

	pages := make(PageList, len(files))
	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			pg, err := readPage(g.gene, g.log, file)
			if err != nil {
				return err
			}
			pages[i] = pg
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	sort.Sort(pages)

	if err := g.gene.Render(ctx, root, pages); err != nil {
		if r, ok := g.gene.(rollbacker); ok {
			r.Rollback(root) // roll back before exiting
		}
		return err
	}
	return g.gene.After(root)
}
