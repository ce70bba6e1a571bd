package geo

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Overlap is a pair of markers whose circles intersect on the canvas. A is
// always the marker that comes first in the input.
type Overlap struct {
	A, B string
}

type pin struct {
	index int
	m     Marker
	rect  rtreego.Rect
}

func (p *pin) Bounds() rtreego.Rect { return p.rect }

// Overlaps returns every pair of markers that would be drawn on top of each
// other. The layout is not changed; this only helps callers report pins
// that hide one another.
func Overlaps(markers []Marker) []Overlap {
	if len(markers) < 2 {
		return nil
	}
	tree := rtreego.NewTree(2, 25, 50)
	pins := make([]*pin, 0, len(markers))
	for i, m := range markers {
		side := math.Max(2*m.Radius, 1e-9)
		rect, err := rtreego.NewRect(rtreego.Point{m.X - m.Radius, m.Y - m.Radius}, []float64{side, side})
		if err != nil {
			continue
		}
		p := &pin{index: i, m: m, rect: rect}
		pins = append(pins, p)
		tree.Insert(p)
	}

	var pairs [][2]int
	for _, p := range pins {
		for _, s := range tree.SearchIntersect(p.rect) {
			q := s.(*pin)
			if q.index <= p.index {
				continue
			}
			if math.Hypot(p.m.X-q.m.X, p.m.Y-q.m.Y) < p.m.Radius+q.m.Radius {
				pairs = append(pairs, [2]int{p.index, q.index})
			}
		}
	}
	// tree order is not input order
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	out := make([]Overlap, len(pairs))
	for i, pr := range pairs {
		out[i] = Overlap{A: markers[pr[0]].ID, B: markers[pr[1]].ID}
	}
	return out
}
