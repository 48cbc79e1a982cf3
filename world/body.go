package world

import "math"

// Body is the single dynamic object of the world: the candy.
type Body struct {
	Pos         Pt
	Vel         Pt
	Radius      float64
	Density     float64
	Restitution float64
	Friction    float64
	AirFriction float64
	// Force accumulates the forces registered by the zone systems during a
	// step. The next integration consumes it and then clears it.
	Force Pt
}

func NewBody(pos Pt, p Params) Body {
	return Body{
		Pos:         pos,
		Radius:      p.CandyRadius,
		Density:     p.CandyDensity,
		Restitution: p.CandyRestitution,
		Friction:    p.CandyFriction,
		AirFriction: p.CandyAirFriction,
	}
}

func (b *Body) Mass() float64 {
	return b.Density * math.Pi * b.Radius * b.Radius
}

// ApplyForce registers a force for the next integration.
func (b *Body) ApplyForce(f Pt) {
	if !finite(f) {
		return
	}
	b.Force = b.Force.Add(f)
}

// Integrate advances the body by one fixed step of dt seconds.
//
// The order is fixed:
// - gravity and accumulated forces change the velocity
// - air friction damps the velocity
// - the velocity moves the position (semi-implicit Euler)
// - the ropes pull the position back, then fix the velocity
// - walls push the body out and bounce it
//
// Ropes are solved iteratively because with 2 or 3 ropes on the same body a
// single pass oscillates instead of converging.
func (b *Body) Integrate(ropes []Rope, walls []Rect, p Params, dt float64) {
	acc := p.Gravity()
	if m := b.Mass(); m > epsilon {
		acc = acc.Add(b.Force.Mul(1 / m))
	}
	b.Force = Pt{}

	b.Vel = b.Vel.Add(acc.Mul(dt))
	b.Vel = b.Vel.Mul(1 - b.AirFriction)
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))

	for range p.PositionIterations {
		for i := range ropes {
			ropes[i].solvePosition(b)
		}
	}
	for range p.VelocityIterations {
		for i := range ropes {
			ropes[i].solveVelocity(b)
		}
	}
	for _, w := range walls {
		b.collideRect(w)
	}
}

// collideRect pushes the body out of an axis-aligned rectangle and reflects
// the normal component of its velocity, scaled by the restitution. The
// tangential component is reduced by the friction.
func (b *Body) collideRect(r Rect) {
	closest := r.ClampPoint(b.Pos)
	d := b.Pos.Sub(closest)
	dist := d.Norm()
	if dist >= b.Radius {
		return
	}

	var n Pt
	if dist > epsilon {
		n = d.Mul(1 / dist)
	} else {
		// The center is inside the rectangle. Leave through the closest edge.
		n = insideNormal(r, b.Pos)
		dist = -distToEdge(r, b.Pos)
	}
	b.Pos = b.Pos.Add(n.Mul(b.Radius - dist))

	vn := b.Vel.Dot(n)
	if vn >= 0 {
		return
	}
	normal := n.Mul(vn)
	tangent := b.Vel.Sub(normal)
	b.Vel = tangent.Mul(1 - b.Friction).Sub(normal.Mul(b.Restitution))
}

// insideNormal returns the outward normal of the edge of r closest to p.
func insideNormal(r Rect, p Pt) Pt {
	left := p.X - r.X.Lo
	right := r.X.Hi - p.X
	top := p.Y - r.Y.Lo
	bottom := r.Y.Hi - p.Y
	m := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch m {
	case left:
		return Pt{X: -1}
	case right:
		return Pt{X: 1}
	case top:
		return Pt{Y: -1}
	default:
		return Pt{Y: 1}
	}
}

func distToEdge(r Rect, p Pt) float64 {
	return math.Min(
		math.Min(p.X-r.X.Lo, r.X.Hi-p.X),
		math.Min(p.Y-r.Y.Lo, r.Y.Hi-p.Y))
}
