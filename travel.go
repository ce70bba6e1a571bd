package lore

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html/template"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gernest/lore/geo"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
)

var (
	//ErrDuplicateID is returned when two travel entries share an id. Their
	// pins would link to the same section.
	ErrDuplicateID = errors.New("duplicate entry id")

	//ErrNoEntries is returned when the travel directory has no markdown files.
	ErrNoEntries = errors.New("no travel entries")

	//ErrBadCoords is returned for coords that are not a [lat, lon] pair.
	ErrBadCoords = errors.New("coords must be a [lat, lon] pair of numbers")
)

// TravelEntry is one section of the travel page.
type TravelEntry struct {
	ID       string
	Title    string
	Date     string
	Location string
	Coord    *geo.Coordinate
	Content  template.HTML
	Source   string
}

// TravelPage is what the travel template sees.
type TravelPage struct {
	Site    SiteConfig
	Title   string
	Link    string
	CSSPath string
	Map     template.HTML
	Entries []*TravelEntry
	Markers []geo.Marker
}

// BuildTravel builds the travel page from the markdown files of the travel
// directory, newest file name first. It writes the map and index.html and
// returns the page it rendered.
func (d *DefaultRenderer) BuildTravel(ctx context.Context) (*TravelPage, error) {
	if d.config == nil {
		return nil, errors.New("renderer used before Before")
	}
	mapCfg, err := d.config.Map.Geo()
	if err != nil {
		return nil, err
	}
	dir := d.travelDir()
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEntries, dir)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	slots := make([]*TravelEntry, len(files))
	group, groupctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			e, err := d.parseEntry(groupctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			slots[i] = e
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var entries []*TravelEntry
	for _, e := range slots {
		if e != nil {
			entries = append(entries, e)
		}
	}
	if err := checkUnique(entries); err != nil {
		return nil, err
	}

	markers, err := geo.LayoutPins(pins(entries), mapCfg)
	if err != nil {
		return nil, err
	}
	for _, o := range geo.Overlaps(markers) {
		d.log.Warn("pins overlap on the map", "a", o.A, "b", o.B)
	}

	svg := &bytes.Buffer{}
	if err := WriteMap(svg, markers, mapCfg, d.config.Map.Background); err != nil {
		return nil, err
	}

	outDir := dir
	if d.config.Output != "" {
		outDir = filepath.Join(d.outputDir(), d.config.Travel.Dir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	mapFile := filepath.Join(outDir, TravelMap)
	doc := append([]byte(xml.Header), svg.Bytes()...)
	if err := ioutil.WriteFile(mapFile, doc, DefaultPerm); err != nil {
		return nil, err
	}

	page := &TravelPage{
		Site:    d.config.Site,
		Title:   d.config.Travel.Title,
		Link:    "/" + filepath.ToSlash(filepath.Clean(d.config.Travel.Dir)) + "/",
		CSSPath: cssPath(d.root, filepath.Join(dir, TravelIndex)),
		Map:     template.HTML(svg.String()),
		Entries: entries,
		Markers: markers,
	}
	index := filepath.Join(outDir, TravelIndex)
	if err := d.execute(DefaultTpl.Travel, page, index); err != nil {
		return nil, err
	}
	d.log.Info("built travel page", "entries", len(entries), "pins", len(markers), "out", index)
	return page, nil
}

// parseEntry returns nil for files without front matter; they are skipped.
func (d *DefaultRenderer) parseEntry(ctx context.Context, file string) (*TravelEntry, error) {
	d.log.Debug("processing travel entry", "path", file)
	page, err := d.readPage(file)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		d.log.Warn("no front matter, skipping", "path", file)
		return nil, nil
	}
	html, err := d.conv.Convert(ctx, page.Body)
	if err != nil {
		return nil, err
	}
	e := &TravelEntry{
		ID:       stringValue(page.Data["id"]),
		Title:    stringValue(page.Data["title"]),
		Date:     stringValue(page.Data["date"]),
		Location: stringValue(page.Data["location"]),
		Content:  template.HTML(StripFirstH1(html)),
		Source:   file,
	}
	if e.ID == "" {
		e.ID = slug.Make(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
	}
	if e.Title == "" {
		e.Title = defaultEntryTitle
	}
	e.Coord, err = parseCoords(page.Data["coords"])
	if err != nil {
		if d.config.Travel.Strict {
			return nil, err
		}
		d.log.Warn("dropping pin", "path", file, "id", e.ID, "err", err)
		e.Coord = nil
	}
	return e, nil
}

// parseCoords reads a [lat, lon] pair. A missing value or an empty list
// means the entry has no location.
func parseCoords(v interface{}) (*geo.Coordinate, error) {
	if v == nil {
		return nil, nil
	}
	pair, ok := v.([]interface{})
	if ok && len(pair) == 0 {
		return nil, nil
	}
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("%w, got %v", ErrBadCoords, v)
	}
	lat, ok := number(pair[0])
	if !ok {
		return nil, fmt.Errorf("%w, got %v", ErrBadCoords, v)
	}
	lon, ok := number(pair[1])
	if !ok {
		return nil, fmt.Errorf("%w, got %v", ErrBadCoords, v)
	}
	c, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func number(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func checkUnique(entries []*TravelEntry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w %q in %s and %s", ErrDuplicateID, e.ID, prev, e.Source)
		}
		seen[e.ID] = e.Source
	}
	return nil
}

func pins(entries []*TravelEntry) []geo.Entry {
	out := make([]geo.Entry, len(entries))
	for i, e := range entries {
		label := e.Location
		if label == "" {
			label = e.Title
		}
		out[i] = geo.Entry{ID: e.ID, Label: label, Coord: e.Coord}
	}
	return out
}
