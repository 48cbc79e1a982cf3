package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate_FreeFall(t *testing.T) {
	p := DefaultParams()
	b := NewBody(Pt{200, 200}, p)

	// The body must follow semi-implicit Euler exactly:
	// v = (v + g*dt) * (1 - airFriction), then p = p + v*dt.
	pos, vel := 200.0, 0.0
	for range 60 {
		b.Integrate(nil, nil, p, fixedDtSeconds)
		vel = (vel + p.GravityY*fixedDtSeconds) * (1 - p.CandyAirFriction)
		pos += vel * fixedDtSeconds
	}
	assert.InDelta(t, pos, b.Pos.Y, 1e-9)
	assert.InDelta(t, vel, b.Vel.Y, 1e-9)
	assert.Equal(t, 200.0, b.Pos.X)
}

func TestApplyForce(t *testing.T) {
	p := DefaultParams()
	b := NewBody(Pt{200, 200}, p)
	assert.InDelta(t, 0.001*math.Pi*25*25, b.Mass(), 1e-12)

	// A force that cancels gravity keeps the body in place.
	b.ApplyForce(p.Gravity().Mul(-b.Mass()))
	b.Integrate(nil, nil, p, fixedDtSeconds)
	assert.InDelta(t, 0, b.Vel.Y, 1e-9)
	assert.InDelta(t, 200, b.Pos.Y, 1e-9)

	// The force only lasts one step.
	assert.Equal(t, Pt{}, b.Force)
	b.Integrate(nil, nil, p, fixedDtSeconds)
	assert.Greater(t, b.Vel.Y, 0.0)

	// Garbage is ignored.
	b.ApplyForce(Pt{math.NaN(), 0})
	b.ApplyForce(Pt{0, math.Inf(1)})
	assert.Equal(t, Pt{}, b.Force)
}

func TestRope_OneStepOvershoot(t *testing.T) {
	w := newWorld(t, oneRopeLevel())
	require.Equal(t, 100.0, w.MustRope("A").RestLength)

	w.Step(PlayerInput{})
	assert.LessOrEqual(t, Dist(Pt{100, 100}, w.Candy.Pos), 101.0)
}

func TestRope_Converges(t *testing.T) {
	for _, stiffness := range []float64{0.3, 0.5, 0.9, 1} {
		for _, damping := range []float64{0, 0.05, 0.5, 0.9} {
			p := DefaultParams()
			p.RopeStiffness = stiffness
			p.RopeDamping = damping

			// Start with the rope horizontal so the candy swings.
			l := oneRopeLevel()
			l.CandyStart = LevelPt{X: 200, Y: 100}
			w, err := NewWorld(l, p)
			require.NoError(t, err)
			rest := w.MustRope("A").RestLength

			for range 10000 {
				w.Step(PlayerInput{})
				require.True(t, finite(w.Candy.Pos))
				require.True(t, finite(w.Candy.Vel))
			}
			require.Equal(t, Playing, w.State)
			assert.LessOrEqual(t, Dist(Pt{100, 100}, w.Candy.Pos), rest+0.1,
				"stiffness %f damping %f", stiffness, damping)
			// The swing dies out and the candy hangs below the anchor.
			assert.InDelta(t, 100, w.Candy.Pos.X, 1)
		}
	}
}

func TestRope_CanonicalConstantsStayTaut(t *testing.T) {
	l := oneRopeLevel()
	l.CandyStart = LevelPt{X: 200, Y: 100}
	w := newWorld(t, l)
	for range 10000 {
		w.Step(PlayerInput{})
		assert.LessOrEqual(t, Dist(Pt{100, 100}, w.Candy.Pos), 100+1e-3)
	}
}

func TestRope_ThreeRopesDontDiverge(t *testing.T) {
	l := twoRopeLevel()
	l.Anchors = append(l.Anchors, AnchorDef{Id: "c", X: 200, Y: 50})
	l.Ropes = append(l.Ropes, RopeDef{Id: "C", Anchor: "c"})
	w := newWorld(t, l)
	for range 10000 {
		w.Step(PlayerInput{})
	}
	// Three taut ropes hold the candy where it started.
	assert.InDelta(t, 200, w.Candy.Pos.X, 1)
	assert.InDelta(t, 200, w.Candy.Pos.Y, 1)
}

func TestRope_Degenerate(t *testing.T) {
	// The candy starts on the anchor, so the rope has no length. It must be
	// ignored instead of producing NaNs.
	l := oneRopeLevel()
	l.CandyStart = LevelPt{X: 100, Y: 100}
	w := newWorld(t, l)
	w.Step(PlayerInput{})
	assert.True(t, finite(w.Candy.Pos))
	assert.Greater(t, w.Candy.Pos.Y, 100.0)
}

func TestIntegrate_Wall(t *testing.T) {
	p := DefaultParams()
	b := NewBody(Pt{50, 70}, p)
	b.Vel = Pt{0, 600}
	wall := NewRect(0, 100, 100, 20)

	b.Integrate(nil, []Rect{wall}, p, fixedDtSeconds)
	vn := (600 + p.GravityY*fixedDtSeconds) * (1 - p.CandyAirFriction)

	// Pushed out on top of the wall, bouncing back up.
	assert.InDelta(t, 100-p.CandyRadius, b.Pos.Y, 1e-9)
	assert.InDelta(t, -vn*p.CandyRestitution, b.Vel.Y, 1e-9)

	// A body resting on the wall slides with friction.
	b = NewBody(Pt{50, 100 - p.CandyRadius}, p)
	b.Vel = Pt{100, 0}
	b.Integrate(nil, []Rect{wall}, p, fixedDtSeconds)
	assert.Less(t, b.Vel.X, 100*(1-p.CandyAirFriction))
	assert.InDelta(t, 100-p.CandyRadius, b.Pos.Y, 1e-9)
}
