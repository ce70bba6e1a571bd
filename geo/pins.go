package geo

import "fmt"

// Entry is something that may be pinned on the map. Coord is nil when the
// entry has no location.
type Entry struct {
	ID    string
	Label string
	Coord *Coordinate
}

// Marker is a pin ready to be drawn.
type Marker struct {
	ID     string
	Label  string
	X, Y   float64
	Radius float64
	Href   string
}

// EntryError reports the entry whose coordinate could not be projected.
type EntryError struct {
	ID  string
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.ID, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// LayoutPins projects every entry that has a coordinate and returns one
// marker per such entry, in input order. Entries without coordinates are
// skipped. Identifiers are passed through as they are; keeping them unique
// is up to the caller.
func LayoutPins(entries []Entry, cfg Config) ([]Marker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := cfg.radius()
	var markers []Marker
	for _, e := range entries {
		if e.Coord == nil {
			continue
		}
		if err := e.Coord.Validate(); err != nil {
			return nil, &EntryError{ID: e.ID, Err: err}
		}
		x, y := project(*e.Coord, cfg)
		markers = append(markers, Marker{
			ID:     e.ID,
			Label:  e.Label,
			X:      x,
			Y:      y,
			Radius: r,
			Href:   "#" + e.ID,
		})
	}
	if markers == nil {
		markers = []Marker{}
	}
	return markers, nil
}
