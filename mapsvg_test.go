package lore

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gernest/lore/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMap(t *testing.T) {
	cfg := geo.DefaultConfig()
	markers, err := geo.LayoutPins([]geo.Entry{
		{ID: "kyoto", Label: "Kyoto & Nara", Coord: &geo.Coordinate{Lat: 35, Lon: 135.8}},
		{ID: "lima", Label: "Lima", Coord: &geo.Coordinate{Lat: -12, Lon: -77}},
	}, cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, markers, cfg, ""))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, out, `viewBox="0 0 1000 500"`)
	assert.Contains(t, out, `class="outline"`)
	assert.Contains(t, out, `class="graticule"`)
	assert.NotContains(t, out, "<image")
	assert.Contains(t, out, `<a href="#kyoto">`)
	assert.Contains(t, out, `<title>Kyoto &amp; Nara</title>`)
	assert.Contains(t, out, `cx="`+num(markers[1].X)+`" cy="`+num(markers[1].Y)+`" r="4"`)

	// the output must be well formed
	var doc svgDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Pins, 2)
	assert.Equal(t, "#lima", doc.Pins[1].Href)
	assert.Equal(t, "Lima", doc.Pins[1].Circle.Title)
}

func TestWriteMapBackground(t *testing.T) {
	cfg := geo.DefaultConfig()
	cfg.Kind = geo.Equirectangular
	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, nil, cfg, "/images/world.svg"))
	out := buf.String()
	assert.Contains(t, out, `<image href="/images/world.svg" width="1000" height="500">`)
	assert.NotContains(t, out, `class="outline"`)
	assert.NotContains(t, out, "<a ")
}

func TestWriteMapInvalidConfig(t *testing.T) {
	cfg := geo.DefaultConfig()
	cfg.Height = 0
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteMap(&buf, nil, cfg, ""), geo.ErrInvalidConfig)
	assert.Zero(t, buf.Len())
}

func TestOutlineEquirectangular(t *testing.T) {
	cfg := geo.DefaultConfig()
	cfg.Kind = geo.Equirectangular
	d, err := outline(cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "M0 500L0 486.11"))
	assert.True(t, strings.HasSuffix(d, "L1000 500Z"))
}

func TestMapPathsReportProjectionErrors(t *testing.T) {
	cfg := geo.DefaultConfig()
	cfg.Width = -1

	_, err := outline(cfg)
	assert.ErrorIs(t, err, geo.ErrInvalidConfig)

	_, err = graticule(cfg)
	assert.ErrorIs(t, err, geo.ErrInvalidConfig)
}

func TestNum(t *testing.T) {
	sample := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{877.2222, "877.22"},
		{12.5, "12.5"},
		{-0.001, "0"},
		{-3.456, "-3.46"},
	}
	for _, v := range sample {
		assert.Equal(t, v.want, num(v.v), "%v", v.v)
	}
}
