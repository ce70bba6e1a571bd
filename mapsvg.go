package lore

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gernest/lore/geo"
)

type svgDoc struct {
	XMLName xml.Name  `xml:"http://www.w3.org/2000/svg svg"`
	ViewBox string    `xml:"viewBox,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Role    string    `xml:"role,attr"`
	Label   string    `xml:"aria-label,attr"`
	Image   *svgImage `xml:"image,omitempty"`
	Paths   []svgPath `xml:"path"`
	Pins    []svgPin  `xml:"a"`
}

type svgImage struct {
	Href   string `xml:"href,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

type svgPath struct {
	Class string `xml:"class,attr"`
	D     string `xml:"d,attr"`
}

type svgPin struct {
	Href   string    `xml:"href,attr"`
	Circle svgCircle `xml:"circle"`
}

type svgCircle struct {
	Class string `xml:"class,attr"`
	CX    string `xml:"cx,attr"`
	CY    string `xml:"cy,attr"`
	R     string `xml:"r,attr"`
	Title string `xml:"title,omitempty"`
}

// WriteMap draws the outline of the projection, a 30 degree graticule, the
// optional background asset and one linked circle per marker. Markers must
// have been laid out with cfg.
func WriteMap(w io.Writer, markers []geo.Marker, cfg geo.Config, background string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	doc := svgDoc{
		ViewBox: fmt.Sprintf("0 0 %s %s", num(cfg.Width), num(cfg.Height)),
		Width:   num(cfg.Width),
		Height:  num(cfg.Height),
		Role:    "img",
		Label:   "World Map",
	}
	if background != "" {
		doc.Image = &svgImage{Href: background, Width: num(cfg.Width), Height: num(cfg.Height)}
	} else {
		d, err := outline(cfg)
		if err != nil {
			return err
		}
		doc.Paths = append(doc.Paths, svgPath{Class: "outline", D: d})
	}
	grid, err := graticule(cfg)
	if err != nil {
		return err
	}
	doc.Paths = append(doc.Paths, svgPath{Class: "graticule", D: grid})
	for _, m := range markers {
		doc.Pins = append(doc.Pins, svgPin{
			Href: m.Href,
			Circle: svgCircle{
				Class: "pin",
				CX:    num(m.X),
				CY:    num(m.Y),
				R:     num(m.Radius),
				Title: m.Label,
			},
		})
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Flush()
}

func outline(cfg geo.Config) (string, error) {
	var c coords
	for lat := -90.0; lat <= 90; lat += 5 {
		c.add(cfg, lat, -180)
	}
	for lat := 90.0; lat >= -90; lat -= 5 {
		c.add(cfg, lat, 180)
	}
	if c.err != nil {
		return "", c.err
	}
	return polyline(c.pts) + "Z", nil
}

func graticule(cfg geo.Config) (string, error) {
	var b strings.Builder
	for lat := -60.0; lat <= 60; lat += 30 {
		var c coords
		for lon := -180.0; lon <= 180; lon += 10 {
			c.add(cfg, lat, lon)
		}
		if c.err != nil {
			return "", c.err
		}
		b.WriteString(polyline(c.pts))
	}
	for lon := -150.0; lon <= 150; lon += 30 {
		var c coords
		for lat := -90.0; lat <= 90; lat += 5 {
			c.add(cfg, lat, lon)
		}
		if c.err != nil {
			return "", c.err
		}
		b.WriteString(polyline(c.pts))
	}
	return b.String(), nil
}

// coords collects projected points, keeping the first projection error.
type coords struct {
	pts [][2]float64
	err error
}

func (c *coords) add(cfg geo.Config, lat, lon float64) {
	if c.err != nil {
		return
	}
	x, y, err := geo.Project(geo.Coordinate{Lat: lat, Lon: lon}, cfg)
	if err != nil {
		c.err = fmt.Errorf("projecting (%v, %v): %w", lat, lon, err)
		return
	}
	c.pts = append(c.pts, [2]float64{x, y})
}

func polyline(pts [][2]float64) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(num(p[0]))
		b.WriteString(" ")
		b.WriteString(num(p[1]))
	}
	return b.String()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
