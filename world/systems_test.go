package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars_CollectedOnce(t *testing.T) {
	l := freeLevel()
	l.Stars = []StarDef{
		{Id: "s1", X: 200, Y: 260},
		{Id: "s2", X: 200, Y: 400},
		{Id: "s3", X: 50, Y: 400}, // not on the way
	}
	w := newWorld(t, l)

	events := stepUntilTerminal(w, 1000)
	assert.Equal(t, 2, countEvents[StarCollected](events))
	assert.True(t, w.Stars["s1"].Collected)
	assert.True(t, w.Stars["s2"].Collected)
	assert.False(t, w.Stars["s3"].Collected)
	assert.Equal(t, int64(2), w.StarsCollected())

	// Stars come in the order the candy reaches them.
	var order []StarId
	for _, e := range events {
		if s, ok := e.(StarCollected); ok {
			order = append(order, s.Star)
		}
	}
	assert.Equal(t, []StarId{"s1", "s2"}, order)
}

func TestStars_NotReportedAgain(t *testing.T) {
	// The candy hangs on the star and never leaves it.
	l := oneRopeLevel()
	l.Stars = []StarDef{{Id: "s", X: 100, Y: 210}}
	w := newWorld(t, l)

	var events []Event
	for range 300 {
		events = append(events, w.Step(PlayerInput{})...)
	}
	assert.Equal(t, 1, countEvents[StarCollected](events))
}

func TestSpikes(t *testing.T) {
	l := freeLevel()
	l.CandyStart = LevelPt{X: 50, Y: 505}
	l.Spikes = []RectDef{{Id: "spikes", X: 0, Y: 500, Width: 100, Height: 20}}
	w := newWorld(t, l)

	events := w.Step(PlayerInput{})
	assert.Equal(t, Lost, w.State)
	require.Len(t, events, 2)
	assert.Equal(t, SpikeHit{Spike: "spikes", Frame: 1}, events[1])
	assert.Equal(t, 0, countEvents[GameLost](events))

	assert.Empty(t, w.Step(PlayerInput{}))
}

func TestSpikes_SpeedDoesNotMatter(t *testing.T) {
	l := freeLevel()
	l.Spikes = []RectDef{{X: 0, Y: 500, Width: 400, Height: 20}}
	w := newWorld(t, l)

	events := stepUntilTerminal(w, 1000)
	assert.Equal(t, Lost, w.State)
	assert.Equal(t, 1, countEvents[SpikeHit](events))
	assert.Equal(t, 0, countEvents[GameLost](events))
	assert.Equal(t, SpikeId("spike1"), events[len(events)-1].(SpikeHit).Spike)
}

func TestSpikes_ThinStripCannotBeSkipped(t *testing.T) {
	// By the time the candy gets to these strips it falls more than their
	// height in a single step.
	strips := []RectDef{
		{Id: "strip", X: 0, Y: 700, Width: 400, Height: 20},
		{Id: "strip", X: 0, Y: 765, Width: 400, Height: 20},
		{Id: "strip", X: 0, Y: 700, Width: 400, Height: 2},
	}
	for _, strip := range strips {
		l := freeLevel()
		l.Spikes = []RectDef{strip}
		w := newWorld(t, l)

		events := stepUntilTerminal(w, 1000)
		assert.Equal(t, Lost, w.State, "strip %v", strip)
		require.Equal(t, 1, countEvents[SpikeHit](events), "strip %v", strip)
		assert.Equal(t, 0, countEvents[GameLost](events), "strip %v", strip)
		assert.Equal(t, SpikeId("strip"), events[len(events)-1].(SpikeHit).Spike)
		assert.GreaterOrEqual(t, w.Candy.Pos.Y, strip.Y)
	}
}

func TestBubble_Lifts(t *testing.T) {
	l := freeLevel()
	l.CandyStart = LevelPt{X: 200, Y: 400}
	l.Bubbles = []BubbleDef{{Id: "b", X: 200, Y: 400, Radius: 60}}
	w := newWorld(t, l)

	for range 10 {
		w.Step(PlayerInput{})
	}
	assert.True(t, w.Bubbles["b"].CapturedByBody)
	assert.Less(t, w.Candy.Vel.Y, 0.0)
	assert.Equal(t, Playing, w.State)
}

func TestBubble_OneAtATime(t *testing.T) {
	l := freeLevel()
	l.CandyStart = LevelPt{X: 200, Y: 400}
	l.Bubbles = []BubbleDef{
		{Id: "b1", X: 200, Y: 400, Radius: 60},
		{Id: "b2", X: 210, Y: 400, Radius: 60},
	}
	w := newWorld(t, l)
	w.Step(PlayerInput{})
	assert.True(t, w.Bubbles["b1"].CapturedByBody)
	assert.False(t, w.Bubbles["b2"].CapturedByBody)
}

func TestBubble_Pop(t *testing.T) {
	l := freeLevel()
	l.CandyStart = LevelPt{X: 200, Y: 400}
	l.Bubbles = []BubbleDef{{Id: "b", X: 200, Y: 400, Radius: 60}}
	w := newWorld(t, l)
	for range 10 {
		w.Step(PlayerInput{})
	}

	// A tap outside the bubble does nothing.
	assert.Empty(t, w.Touch(TouchEvent{TouchStart, Pt{350, 100}}))
	assert.True(t, w.Bubbles["b"].Active)

	events := w.Touch(TouchEvent{TouchStart, Pt{200, 400}})
	require.Len(t, events, 1)
	assert.Equal(t, BubblePopped{Bubble: "b", Pos: Pt{200, 400}}, events[0])
	assert.False(t, w.Bubbles["b"].Active)
	assert.False(t, w.Bubbles["b"].CapturedByBody)

	// A popped bubble can't be popped again and doesn't lift anymore.
	assert.Empty(t, w.Touch(TouchEvent{TouchStart, Pt{200, 400}}))
	for range 30 {
		w.Step(PlayerInput{})
	}
	assert.Greater(t, w.Candy.Vel.Y, 0.0)
}

func TestWind(t *testing.T) {
	l := freeLevel()
	l.Winds = []WindDef{{Id: "w", X: 150, Y: 200, DirX: 3, DirY: 0}}
	w := newWorld(t, l)

	// The direction is normalized and the defaults are applied.
	z := w.Winds["w"]
	assert.Equal(t, Pt{1, 0}, z.Dir)
	assert.Equal(t, DefaultParams().WindRange, z.Range)
	assert.Equal(t, DefaultParams().WindStrength, z.Strength)

	// The push registered in one step moves the candy in the next.
	w.Step(PlayerInput{})
	w.Step(PlayerInput{})
	assert.Greater(t, w.Candy.Vel.X, 0.0)
}

func TestWind_Falloff(t *testing.T) {
	l := freeLevel()
	l.Winds = []WindDef{{Id: "w", X: 0, Y: 200, DirX: 1, DirY: 0, Range: 200}}
	w := newWorld(t, l)

	// The candy is exactly at the range: no push.
	w.applyWind()
	assert.Equal(t, Pt{}, w.Candy.Force)

	// Half way, half the strength.
	w.Candy.Pos = Pt{100, 200}
	w.applyWind()
	expected := DefaultParams().WindStrength * 0.5 * w.Candy.Mass()
	assert.InDelta(t, expected, w.Candy.Force.X, 1e-9)
}
