// Package geo maps geographic coordinates onto a flat canvas and lays out
// the pins drawn on the travel map.
//
// Two projections are supported. Equirectangular is a plain linear mapping.
// Robinson follows the published Robinson table with linear interpolation
// between the 5 degree rows, which is an approximation of the true curve
// good to the resolution of the table.
//
// The calibration values in Config (central meridian, pole compression)
// belong to the backing map asset the pins are drawn over. They are inputs,
// the engine itself knows nothing about any particular asset.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	//ErrOutOfRange is returned for a latitude or longitude outside of its
	// valid range.
	ErrOutOfRange = errors.New("geo: coordinate out of range")

	//ErrInvalidConfig is returned when a projection configuration can not be
	// used to project anything.
	ErrInvalidConfig = errors.New("geo: invalid projection config")
)

const (
	//DefaultWidth is the default canvas width in canvas units.
	DefaultWidth = 1000

	//DefaultHeight is the default canvas height in canvas units.
	DefaultHeight = 500

	//DefaultPoleCompression is the vertical scale used for Robinson maps when
	// nothing else is configured.
	DefaultPoleCompression = 0.87

	//DefaultPinRadius is the radius of a pin in canvas units.
	DefaultPinRadius = 4
)

// Kind is a map projection.
type Kind int

const (
	// Equirectangular maps longitude and latitude linearly onto the canvas.
	Equirectangular Kind = iota + 1

	// Robinson uses the interpolated Robinson table.
	Robinson
)

func (k Kind) String() string {
	switch k {
	case Equirectangular:
		return "equirectangular"
	case Robinson:
		return "robinson"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the projection named by s.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equirectangular", "plate-carree":
		return Equirectangular, nil
	case "robinson":
		return Robinson, nil
	}
	return 0, fmt.Errorf("%w: unknown projection %q", ErrInvalidConfig, s)
}

// Coordinate is a point on the globe in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate returns a validated coordinate. Values are never clamped.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate checks that both components are finite and within range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, c.Lon)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lon)
}

// Config describes the canvas and projection pins are placed on.
type Config struct {
	Kind   Kind
	Width  float64
	Height float64

	// CentralMeridian is the longitude drawn at the horizontal center of
	// the canvas.
	CentralMeridian float64

	// PoleCompression scales the vertical axis of Robinson maps so the
	// poles land where the backing map draws them. Ignored for
	// equirectangular maps.
	PoleCompression float64

	// PinRadius is the radius given to every marker. Zero means
	// DefaultPinRadius.
	PinRadius float64
}

// DefaultConfig returns a Robinson configuration on a 1000x500 canvas.
func DefaultConfig() Config {
	return Config{
		Kind:            Robinson,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		PoleCompression: DefaultPoleCompression,
		PinRadius:       DefaultPinRadius,
	}
}

// Validate reports the first problem that makes c unusable.
func (c Config) Validate() error {
	switch {
	case !positive(c.Width):
		return fmt.Errorf("%w: canvas width %v", ErrInvalidConfig, c.Width)
	case !positive(c.Height):
		return fmt.Errorf("%w: canvas height %v", ErrInvalidConfig, c.Height)
	case math.IsNaN(c.CentralMeridian) || c.CentralMeridian < -180 || c.CentralMeridian > 180:
		return fmt.Errorf("%w: central meridian %v", ErrInvalidConfig, c.CentralMeridian)
	case math.IsNaN(c.PinRadius) || math.IsInf(c.PinRadius, 0) || c.PinRadius < 0:
		return fmt.Errorf("%w: pin radius %v", ErrInvalidConfig, c.PinRadius)
	}
	switch c.Kind {
	case Equirectangular:
		return nil
	case Robinson:
		if !positive(c.PoleCompression) || c.PoleCompression > 1 {
			return fmt.Errorf("%w: pole compression %v", ErrInvalidConfig, c.PoleCompression)
		}
		if err := robinsonTable.validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown projection %v", ErrInvalidConfig, c.Kind)
}

func (c Config) radius() float64 {
	if c.PinRadius == 0 {
		return DefaultPinRadius
	}
	return c.PinRadius
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Project returns the canvas position of coord under cfg. The origin is the
// top left corner of the canvas and y grows downwards.
func Project(coord Coordinate, cfg Config) (x, y float64, err error) {
	if err = cfg.Validate(); err != nil {
		return 0, 0, err
	}
	if err = coord.Validate(); err != nil {
		return 0, 0, err
	}
	x, y = project(coord, cfg)
	return x, y, nil
}

// project assumes both arguments are valid.
func project(c Coordinate, cfg Config) (x, y float64) {
	switch cfg.Kind {
	case Robinson:
		length, dist := Interpolate(c.Lat)
		x = cfg.Width/2 + (c.Lon-cfg.CentralMeridian)*(cfg.Width/360)*length
		y = cfg.Height/2 - dist*(cfg.Height/2)*cfg.PoleCompression
	default:
		x = (c.Lon - cfg.CentralMeridian + 180) * (cfg.Width / 360)
		y = (90 - c.Lat) * (cfg.Height / 180)
	}
	return x, y
}
