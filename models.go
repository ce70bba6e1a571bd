package lore

import (
	"context"
	"io"
	"time"
)

const (

	//DefaultConfigFile is the configuration file at the root of a project
	DefaultConfigFile = "_lore.yml"

	//ThemeDir is the directory where themes are installed
	ThemeDir = "_themes"

	//DefaultExt is the extension of generated pages
	DefaultExt = ".html"

	//DefaultPerm is the permission of generated files
	DefaultPerm = 0644

	//DefaultTravelDir is the directory holding the travel log entries
	DefaultTravelDir = "travel"

	//TravelIndex is the name of the generated travel page
	TravelIndex = "index.html"

	//TravelMap is the name of the generated map image
	TravelMap = "world-map.svg"

	//DefaultAuthor is used when neither the page nor the site names one
	DefaultAuthor = "Sid Sharma"

	defaultTitle      = "Blog Post"
	defaultEntryTitle = "Untitled"
)

//DefaultTpl names the templates a theme can override.
var DefaultTpl = struct {
	Post, Travel string
}{
	"post.html",
	"travel.html",
}

type (
	// PageList is a collection of pages
	PageList []*Page

	// Page is a markdown document split into front matter and body.
	Page struct {
		Path    string
		Body    []byte
		ModTime time.Time
		Data    map[string]interface{}
	}

	// Author is someone credited on a post. URL is optional.
	Author struct {
		Name string `mapstructure:"name" yaml:"name"`
		URL  string `mapstructure:"url" yaml:"url"`
	}

	//FileLoader loads files needed for processing.
	FileLoader interface {
		Load(root string) ([]string, error)
	}

	//FrontMatter extracts frontmatter from a text file
	FrontMatter interface {
		Parse(io.Reader) (front map[string]interface{}, body io.Reader, err error)
	}

	//Renderer generates static pages
	Renderer interface {
		Before(root string) error
		Render(ctx context.Context, root string, pages PageList) error
		After(root string) error
	}

	//Generator is a static site generator
	Generator interface {
		FileLoader
		FrontMatter
		Renderer
	}
)

func (p PageList) Len() int           { return len(p) }
func (p PageList) Less(i, j int) bool { return p[i].Path < p[j].Path }
func (p PageList) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
