package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gernest/lore"
	"github.com/urfave/cli"
)

var (
	authors = []cli.Author{
		{Name: "Sid Sharma"},
	}
	sourceFlagName = "source"
	appName        = "lore"
	version        = "0.2.0"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   sourceFlagName,
			Usage:  "sets the path to the project source files",
			EnvVar: "LORE_SOURCE",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "verbose output",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			Usage:  "debug, info, warn or error",
			EnvVar: "LORE_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "log-format",
			Value:  "text",
			Usage:  "text or json",
			EnvVar: "LORE_LOG_FORMAT",
		},
	}
}

func logger(ctx *cli.Context) *slog.Logger {
	level := ctx.String("log-level")
	if ctx.Bool("verbose") {
		level = "debug"
	}
	return setupLogging(os.Stderr, level, ctx.String("log-format"))
}

func source(ctx *cli.Context) string {
	if f := ctx.String(sourceFlagName); f != "" {
		return f
	}
	wd, _ := os.Getwd()
	return wd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func build(ctx *cli.Context) error {
	log := logger(ctx)
	c, cancel := signalContext()
	defer cancel()
	src := source(ctx)
	if err := lore.New(log).Run(c, src); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	log.Info("site built", "source", src)
	return nil
}

func post(ctx *cli.Context) error {
	log := logger(ctx)
	if ctx.NArg() != 1 {
		return cli.NewExitError("usage: lore post [options] FILE", 1)
	}
	c, cancel := signalContext()
	defer cancel()
	r := lore.NewDefaultRenderer(log)
	if err := r.Before(source(ctx)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	out, err := r.ConvertPost(c, ctx.Args().First(), ctx.String("output"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("Converted %s -> %s\n", ctx.Args().First(), out)
	return nil
}

func travel(ctx *cli.Context) error {
	log := logger(ctx)
	c, cancel := signalContext()
	defer cancel()
	r := lore.NewDefaultRenderer(log)
	if err := r.Before(source(ctx)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	page, err := r.BuildTravel(c)
	if err != nil {
		if errors.Is(err, lore.ErrNoEntries) {
			return cli.NewExitError(err.Error()+"\ncreate entries like: travel/kyoto-2024.md", 1)
		}
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("Built travel page with %d entries\n", len(page.Entries))
	return nil
}

func serve(ctx *cli.Context) error {
	log := logger(ctx)
	c, cancel := signalContext()
	defer cancel()
	src := source(ctx)
	app := lore.New(log)
	if err := app.Run(c, src); err != nil {
		log.Error("build failed", "err", err)
	}
	cfg, err := lore.LoadConfig(src)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer watch.Close()
	if err := watchDirs(watch, src, cfg); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	dir := src
	if cfg.Output != "" {
		dir = filepath.Join(src, cfg.Output)
	}
	addr := ctx.String("addr")
	srv := &http.Server{Addr: addr, Handler: http.FileServer(http.Dir(dir))}
	go func() {
		log.Info("serving website", "dir", dir, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", "err", err)
			cancel()
		}
	}()

	var rebuild <-chan time.Time
	for {
		select {
		case <-c.Done():
			shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdown)
		case event := <-watch.Events:
			if !isSource(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Rename|fsnotify.Create|fsnotify.Write|fsnotify.Remove) > 0 {
				log.Debug("detected change", "path", event.Name)
				rebuild = time.After(200 * time.Millisecond)
			}
		case <-rebuild:
			rebuild = nil
			log.Info("rebuilding")
			if err := app.Run(c, src); err != nil {
				log.Error("build failed", "err", err)
			}
		case err := <-watch.Errors:
			if err != nil {
				log.Error("watch", "err", err)
			}
		}
	}
}

// watchDirs watches every source directory of the project.
func watchDirs(w *fsnotify.Watcher, root string, cfg *lore.Config) error {
	out := ""
	if cfg.Output != "" {
		out = filepath.Clean(filepath.Join(root, cfg.Output))
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if path != root && (strings.HasPrefix(name, ".") || filepath.Clean(path) == out) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// isSource reports whether a change to path can change the generated site.
// Generated files are ignored so a build never triggers itself.
func isSource(path string) bool {
	if filepath.Base(path) == lore.DefaultConfigFile {
		return true
	}
	if strings.Contains(filepath.ToSlash(path), lore.ThemeDir+"/") {
		return true
	}
	return lore.HasExt(path, ".md", ".MD", ".mdown", ".markdown")
}

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "markdown blog and travel log generator"
	app.Authors = authors
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:        "build",
			Aliases:     []string{"b"},
			Usage:       "build site",
			Description: "converts every post and builds the travel page",
			Action:      build,
			Flags:       commonFlags(),
		},
		{
			Name:        "post",
			Aliases:     []string{"p"},
			Usage:       "convert a markdown file to HTML",
			ArgsUsage:   "FILE",
			Description: "converts a single post",
			Action:      post,
			Flags: append(commonFlags(), cli.StringFlag{
				Name:  "output, o",
				Usage: "output HTML file",
			}),
		},
		{
			Name:        "travel",
			Aliases:     []string{"t"},
			Usage:       "build the travel lore page",
			Description: "builds the travel page and its map",
			Action:      travel,
			Flags:       commonFlags(),
		},
		{
			Name:        "serve",
			Aliases:     []string{"s"},
			Usage:       "builds and serves the project",
			Description: "serves site, rebuilding on change",
			Action:      serve,
			Flags: append(commonFlags(), cli.StringFlag{
				Name:  "addr",
				Value: ":8000",
				Usage: "listen address",
			}),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
