package lore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gernest/lore/geo"
	"github.com/spf13/viper"
	"github.com/unknwon/com"
)

// Config is the site wide configuration read from _lore.yml.
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	Theme    string         `mapstructure:"theme"`
	Output   string         `mapstructure:"output"`
	Static   []string       `mapstructure:"static"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Travel   TravelConfig   `mapstructure:"travel"`
	Map      MapConfig      `mapstructure:"map"`
}

// SiteConfig is shown on every page.
type SiteConfig struct {
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Authors     []Author `mapstructure:"authors"`
}

// MarkdownConfig selects the markdown converter.
type MarkdownConfig struct {
	Engine    string `mapstructure:"engine"`
	CodeStyle string `mapstructure:"code_style"`
}

// TravelConfig controls the travel page build.
type TravelConfig struct {
	Dir    string `mapstructure:"dir"`
	Title  string `mapstructure:"title"`
	Strict bool   `mapstructure:"strict"`
}

// MapConfig holds the projection and the calibration of the backing map
// asset. CentralMeridian and PoleCompression must be tuned again whenever
// Background changes.
type MapConfig struct {
	Projection      string  `mapstructure:"projection"`
	Width           float64 `mapstructure:"width"`
	Height          float64 `mapstructure:"height"`
	CentralMeridian float64 `mapstructure:"central_meridian"`
	PoleCompression float64 `mapstructure:"pole_compression"`
	PinRadius       float64 `mapstructure:"pin_radius"`
	Background      string  `mapstructure:"background"`
}

// Geo returns the projection config described by m.
func (m MapConfig) Geo() (geo.Config, error) {
	kind, err := geo.ParseKind(m.Projection)
	if err != nil {
		return geo.Config{}, err
	}
	cfg := geo.Config{
		Kind:            kind,
		Width:           m.Width,
		Height:          m.Height,
		CentralMeridian: m.CentralMeridian,
		PoleCompression: m.PoleCompression,
		PinRadius:       m.PinRadius,
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the configuration of the project at root. The config file
// is optional; LORE_ prefixed environment variables override it, for
// instance LORE_MAP_PROJECTION sets map.projection.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("site.title", "sid's ramblings")
	v.SetDefault("site.description", "sid sharma's blog")
	v.SetDefault("site.authors", []Author{{Name: DefaultAuthor}})
	v.SetDefault("theme", "")
	v.SetDefault("output", "")
	v.SetDefault("static", []string{})
	v.SetDefault("markdown.engine", EngineGoldmark)
	v.SetDefault("markdown.code_style", "")
	v.SetDefault("travel.dir", DefaultTravelDir)
	v.SetDefault("travel.title", "travel lore")
	v.SetDefault("travel.strict", false)
	v.SetDefault("map.projection", geo.Robinson.String())
	v.SetDefault("map.width", geo.DefaultWidth)
	v.SetDefault("map.height", geo.DefaultHeight)
	v.SetDefault("map.central_meridian", 0)
	v.SetDefault("map.pole_compression", geo.DefaultPoleCompression)
	v.SetDefault("map.pin_radius", geo.DefaultPinRadius)
	v.SetDefault("map.background", "")

	file := filepath.Join(root, DefaultConfigFile)
	if com.IsFile(file) {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	v.SetEnvPrefix("LORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Markdown.Engine {
	case EngineGoldmark, EnginePandoc:
	default:
		errs = append(errs, fmt.Sprintf("markdown.engine must be %q or %q, got %q",
			EngineGoldmark, EnginePandoc, c.Markdown.Engine))
	}
	if c.Travel.Dir == "" {
		errs = append(errs, "travel.dir is required")
	}
	if c.Output != "" {
		out := filepath.Clean(c.Output)
		if filepath.IsAbs(out) || out == "." || strings.HasPrefix(out, "..") {
			errs = append(errs, fmt.Sprintf("output must be a directory below the project root, got %q", c.Output))
		}
	}
	for _, a := range c.Site.Authors {
		if a.Name == "" {
			errs = append(errs, "site.authors entries need a name")
			break
		}
	}
	if _, err := c.Map.Geo(); err != nil {
		errs = append(errs, "map: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
