package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	robinsonStep = 5.0
	robinsonRows = 19
)

// robinsonRow is one line of the Robinson table: the length of the parallel
// relative to the equator and its distance from the equator relative to the
// distance of the pole.
type robinsonRow struct {
	length   float64
	distance float64
}

type table []robinsonRow

// robinsonTable holds one row per 5 degrees of latitude from 0 to 90.
var robinsonTable = table{
	{1.0000, 0.0000},
	{0.9986, 0.0620},
	{0.9954, 0.1240},
	{0.9900, 0.1860},
	{0.9822, 0.2480},
	{0.9730, 0.3100},
	{0.9600, 0.3720},
	{0.9427, 0.4340},
	{0.9216, 0.4958},
	{0.8962, 0.5571},
	{0.8679, 0.6176},
	{0.8350, 0.6769},
	{0.7986, 0.7346},
	{0.7597, 0.7903},
	{0.7186, 0.8435},
	{0.6732, 0.8936},
	{0.6213, 0.9394},
	{0.5722, 0.9761},
	{0.5322, 1.0000},
}

func (t table) validate() error {
	if len(t) != robinsonRows {
		return fmt.Errorf("robinson table has %d rows, want %d", len(t), robinsonRows)
	}
	for i, row := range t {
		if row.length < 0 || row.length > 1 || row.distance < 0 || row.distance > 1 {
			return fmt.Errorf("robinson row %d out of [0,1]: %v", i, row)
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if row.distance < prev.distance {
			return fmt.Errorf("robinson row %d: distance decreases", i)
		}
		if row.length > prev.length {
			return fmt.Errorf("robinson row %d: parallel length increases", i)
		}
	}
	if t[0].distance != 0 {
		return errors.New("robinson table does not start at the equator")
	}
	return nil
}

// lookup interpolates between the two rows bracketing |lat|. The lower row
// index never goes past the second to last row, so 90 degrees resolves to
// the last row with a fraction of one.
func (t table) lookup(lat float64) (length, distance float64) {
	if math.IsNaN(lat) {
		return math.NaN(), math.NaN()
	}
	a := math.Min(math.Abs(lat), 90)
	i := int(math.Floor(a / robinsonStep))
	switch {
	case i < 0:
		i = 0
	case i > len(t)-2:
		i = len(t) - 2
	}
	f := (a - float64(i)*robinsonStep) / robinsonStep
	lo, hi := t[i], t[i+1]

	// v0*(1-f) + v1*f returns the row values unchanged at f == 0 and f == 1.
	length = lo.length*(1-f) + hi.length*f
	distance = lo.distance*(1-f) + hi.distance*f
	if lat < 0 {
		distance = -distance
	}
	return length, distance
}

// Interpolate returns the Robinson parallel length and signed distance from
// the equator at lat. Latitudes beyond the poles, infinities included, are
// treated as the pole. NaN yields NaN for both values.
func Interpolate(lat float64) (length, distance float64) {
	return robinsonTable.lookup(lat)
}
