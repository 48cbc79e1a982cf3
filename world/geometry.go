package world

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Pt is a point or a vector in world space. World space is the logical
// screen: pixels, origin in the top-left corner, Y grows downward.
type Pt = r2.Point

// Segment is a straight line between two points.
type Segment struct {
	Start Pt
	End   Pt
}

// Rect is an axis-aligned rectangle. Spikes and walls are defined by their
// top-left corner and their size, the way level data describes them.
type Rect struct {
	r2.Rect
}

// epsilon is the length under which a vector is considered degenerate.
const epsilon = 1e-9

func NewRect(x, y, width, height float64) Rect {
	return Rect{r2.Rect{
		X: r1.Interval{Lo: x, Hi: x + width},
		Y: r1.Interval{Lo: y, Hi: y + height},
	}}
}

// ContainsPt is inclusive on all edges.
func (r Rect) ContainsPt(p Pt) bool {
	return r.ContainsPoint(p)
}

// IntersectsSegment reports whether any point of s lies inside r, edges
// included. It clips s against the four sides of r (Liang-Barsky). A
// degenerate segment is treated as a point.
func (r Rect) IntersectsSegment(s Segment) bool {
	d := s.End.Sub(s.Start)
	t0, t1 := 0.0, 1.0
	clips := [4][2]float64{
		{-d.X, s.Start.X - r.X.Lo},
		{d.X, r.X.Hi - s.Start.X},
		{-d.Y, s.Start.Y - r.Y.Lo},
		{d.Y, r.Y.Hi - s.Start.Y},
	}
	for _, c := range clips {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
	}
	return t0 <= t1
}

func (r Rect) Width() float64 {
	return r.X.Length()
}

func (r Rect) Height() float64 {
	return r.Y.Length()
}

func Dist(a, b Pt) float64 {
	return b.Sub(a).Norm()
}

func (s Segment) Len() float64 {
	return Dist(s.Start, s.End)
}

// At returns the point at parameter t along the segment (0 is Start, 1 is
// End).
func (s Segment) At(t float64) Pt {
	return s.Start.Add(s.End.Sub(s.Start).Mul(t))
}

// SegmentParam returns the parameter of the projection of p on the line
// through s. The result is not clamped. For a degenerate segment it is 0.
func SegmentParam(p Pt, s Segment) float64 {
	d := s.End.Sub(s.Start)
	lenSq := d.Dot(d)
	if lenSq < epsilon {
		return 0
	}
	return p.Sub(s.Start).Dot(d) / lenSq
}

// DistToSegment returns the distance from p to the closest point of s. The
// projection is clamped to the segment, so this is not the distance to the
// infinite line. A degenerate segment is infinitely far from everything,
// which means "near the rope" tests against it always fail.
func DistToSegment(p Pt, s Segment) float64 {
	d := s.End.Sub(s.Start)
	if d.Dot(d) < epsilon {
		return math.Inf(1)
	}
	t := Clamp(SegmentParam(p, s), 0, 1)
	return Dist(p, s.At(t))
}

// orientation returns the sign of the cross product (b-a) x (c-a):
// 1 for a counter-clockwise turn, -1 for clockwise, 0 for collinear points.
func orientation(a, b, c Pt) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	if cross > epsilon {
		return 1
	}
	if cross < -epsilon {
		return -1
	}
	return 0
}

// SegmentsIntersect reports whether s1 and s2 properly cross each other.
// Segments that only touch (an endpoint lying on the other segment) or that
// are collinear do not count as intersecting. Degenerate segments never
// intersect anything.
func SegmentsIntersect(s1, s2 Segment) bool {
	if s1.Len() < epsilon || s2.Len() < epsilon {
		return false
	}
	o1 := orientation(s1.Start, s1.End, s2.Start)
	o2 := orientation(s1.Start, s1.End, s2.End)
	o3 := orientation(s2.Start, s2.End, s1.Start)
	o4 := orientation(s2.Start, s2.End, s1.End)
	if o1 == 0 || o2 == 0 || o3 == 0 || o4 == 0 {
		return false
	}
	return o1 != o2 && o3 != o4
}

// CirclesOverlap reports whether two circles overlap. Touching circles do
// not overlap.
func CirclesOverlap(c1 Pt, radius1 float64, c2 Pt, radius2 float64) bool {
	return Dist(c1, c2) < radius1+radius2
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// finite reports whether both coordinates are finite numbers.
func finite(p Pt) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
