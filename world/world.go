package world

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"
)

// World rules
// - The candy is the only thing that moves. Ropes, zones and the goal stay
// where the level put them.
// - Every step has the same duration, FixedDt, no matter how much real time
// passed. The same level with the same inputs always plays out the same.
// - A rope, once cut, is gone for the rest of the session.
// - A star is collected at most once.
// - The session ends the first time the candy reaches the goal, touches a
// spike or leaves the bounds. After that, nothing changes and nothing is
// reported until Restart.

type SessionState int64

const (
	Playing SessionState = iota
	Won
	Lost
)

func (s SessionState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("SessionState(%d)", int64(s))
	}
}

type World struct {
	Level   Level
	Params  Params
	State   SessionState
	Frame   int64
	Candy   Body
	Goal    Goal
	Anchors map[AnchorId]Anchor
	Ropes   map[RopeId]Rope
	Stars   map[StarId]Star
	Bubbles map[BubbleId]Bubble
	Winds   map[WindId]WindZone
	Spikes  map[SpikeId]Spike
	Walls   map[WallId]Wall

	// LastTouch is the previous point of the current swipe. It is only
	// meaningful while Touching is true.
	LastTouch Pt
	Touching  bool
}

// NewWorld builds a fresh session for the level. The level and the params
// are validated first and nothing is built if they are wrong.
func NewWorld(level Level, params Params) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		Level:   level,
		Params:  params,
		State:   Playing,
		Candy:   NewBody(level.CandyStart.Pt(), params),
		Anchors: map[AnchorId]Anchor{},
		Ropes:   map[RopeId]Rope{},
		Stars:   map[StarId]Star{},
		Bubbles: map[BubbleId]Bubble{},
		Winds:   map[WindId]WindZone{},
		Spikes:  map[SpikeId]Spike{},
		Walls:   map[WallId]Wall{},
	}

	w.Goal = Goal{Pos: level.Goal.Pt(), Radius: level.GoalRadius}
	if w.Goal.Radius == 0 {
		w.Goal.Radius = GoalRadius
	}

	for _, a := range level.Anchors {
		id := AnchorId(a.Id)
		w.Anchors[id] = Anchor{Id: id, Pos: Pt{X: a.X, Y: a.Y}}
	}

	// Ropes start taut: the rest length is the distance between the anchor
	// and the initial position of the candy.
	for i, r := range level.Ropes {
		id := RopeId(defaultId(r.Id, "rope", i))
		anchor := w.Anchors[AnchorId(r.Anchor)]
		rope := Rope{
			Id:         id,
			Anchor:     anchor.Id,
			AnchorPos:  anchor.Pos,
			RestLength: Dist(anchor.Pos, w.Candy.Pos),
			Stiffness:  params.RopeStiffness,
			Damping:    params.RopeDamping,
		}
		if r.Stiffness != 0 {
			rope.Stiffness = r.Stiffness
		}
		if r.Damping != 0 {
			rope.Damping = r.Damping
		}
		w.Ropes[id] = rope
	}

	for i, s := range level.Stars {
		id := StarId(defaultId(s.Id, "star", i))
		w.Stars[id] = Star{Id: id, Pos: Pt{X: s.X, Y: s.Y}, Radius: StarRadius}
	}

	for i, b := range level.Bubbles {
		id := BubbleId(defaultId(b.Id, "bubble", i))
		w.Bubbles[id] = Bubble{
			Id:     id,
			Pos:    Pt{X: b.X, Y: b.Y},
			Radius: b.Radius,
			Active: true,
		}
	}

	for i, z := range level.Winds {
		id := WindId(defaultId(z.Id, "wind", i))
		wind := WindZone{
			Id:       id,
			Pos:      Pt{X: z.X, Y: z.Y},
			Dir:      Pt{X: z.DirX, Y: z.DirY}.Normalize(),
			Range:    z.Range,
			Strength: z.Strength,
			Active:   true,
		}
		if wind.Range == 0 {
			wind.Range = params.WindRange
		}
		if wind.Strength == 0 {
			wind.Strength = params.WindStrength
		}
		w.Winds[id] = wind
	}

	for i, s := range level.Spikes {
		id := SpikeId(defaultId(s.Id, "spike", i))
		w.Spikes[id] = Spike{Id: id, Bounds: s.Rect()}
	}

	for i, s := range level.Walls {
		id := WallId(defaultId(s.Id, "wall", i))
		w.Walls[id] = Wall{Id: id, Bounds: s.Rect()}
	}
	return w, nil
}

// Restart replaces the session with a brand-new one built from the same
// level. Nothing is reused: rope rest lengths depend on the initial position
// of the candy.
func (w *World) Restart() {
	nw, err := NewWorld(w.Level, w.Params)
	if err != nil {
		// The level and params were validated when w was built.
		panic(fmt.Errorf("restarting a valid world failed: %w", err))
	}
	*w = *nw
}

// Clone returns a deep copy of the world.
func (w *World) Clone() World {
	c := *w
	c.Level = cloneLevel(w.Level)
	c.Anchors = maps.Clone(w.Anchors)
	c.Ropes = maps.Clone(w.Ropes)
	c.Stars = maps.Clone(w.Stars)
	c.Bubbles = maps.Clone(w.Bubbles)
	c.Winds = maps.Clone(w.Winds)
	c.Spikes = maps.Clone(w.Spikes)
	c.Walls = maps.Clone(w.Walls)
	return c
}

func cloneLevel(l Level) Level {
	l.Anchors = slices.Clone(l.Anchors)
	l.Ropes = slices.Clone(l.Ropes)
	l.Stars = slices.Clone(l.Stars)
	l.Bubbles = slices.Clone(l.Bubbles)
	l.Winds = slices.Clone(l.Winds)
	l.Spikes = slices.Clone(l.Spikes)
	l.Walls = slices.Clone(l.Walls)
	return l
}

// Next is the pure form of Step: it leaves w untouched and returns the world
// that follows it, together with the events of the transition.
func Next(w World, input PlayerInput) (World, []Event) {
	next := w.Clone()
	events := next.Step(input)
	return next, events
}

// Step handles one frame: the touch of this frame, if any, then one
// simulation step.
func (w *World) Step(input PlayerInput) (events []Event) {
	if input.Restart {
		w.Restart()
	}
	if input.Touch.Phase != TouchNone {
		events = append(events, w.Touch(input.Touch)...)
	}
	if input.TouchOnly {
		return events
	}
	return append(events, w.advance()...)
}

// Tick advances the simulation by one step. The delta reported by the host
// is ignored: the step is always FixedDt long.
func (w *World) Tick(_ time.Duration) []Event {
	return w.advance()
}

// Touch handles one sample of the touch stream.
func (w *World) Touch(t TouchEvent) (events []Event) {
	if w.State != Playing {
		return nil
	}

	switch t.Phase {
	case TouchStart:
		for _, c := range w.TryCut(nil, t.Pos) {
			events = append(events, RopeCut{Cut: c})
		}
		if id, ok := w.popBubble(t.Pos); ok {
			events = append(events, BubblePopped{Bubble: id, Pos: t.Pos})
		}
		w.LastTouch = t.Pos
		w.Touching = true
	case TouchMove:
		var prev *Pt
		if w.Touching {
			prev = &w.LastTouch
		}
		for _, c := range w.TryCut(prev, t.Pos) {
			events = append(events, RopeCut{Cut: c})
		}
		w.LastTouch = t.Pos
		w.Touching = true
	case TouchEnd:
		w.LastTouch = Pt{}
		w.Touching = false
	}
	return events
}

// advance runs the step pipeline. The order of the systems matters: later
// systems see the effects of earlier ones.
func (w *World) advance() (events []Event) {
	if w.State != Playing {
		return nil
	}
	w.Frame++

	prev := w.Candy.Pos
	w.Candy.Integrate(w.LiveRopes(), w.wallRects(), w.Params, fixedDtSeconds)
	events = append(events, FrameUpdate{Frame: w.Frame})

	events = w.collectStars(events)
	w.applyBubbles()
	w.applyWind()

	if e, hit := w.checkSpikes(prev); hit {
		w.State = Lost
		return append(events, e)
	}
	if w.reachedGoal() {
		w.State = Won
		return append(events, GameWon{Frame: w.Frame})
	}
	if w.outOfBounds() {
		w.State = Lost
		return append(events, GameLost{Frame: w.Frame})
	}
	return events
}

// LiveRopes returns the ropes that have not been cut, ordered by id.
func (w *World) LiveRopes() []Rope {
	ropes := make([]Rope, 0, len(w.Ropes))
	for _, id := range sortedKeys(w.Ropes) {
		ropes = append(ropes, w.Ropes[id])
	}
	return ropes
}

// MustRope returns the rope with the given id and panics if it doesn't
// exist.
func (w *World) MustRope(id RopeId) Rope {
	r, ok := w.Ropes[id]
	if !ok {
		panic(fmt.Errorf("rope %q does not exist", id))
	}
	return r
}

func (w *World) StarsCollected() int64 {
	n := int64(0)
	for _, s := range w.Stars {
		if s.Collected {
			n++
		}
	}
	return n
}

func (w *World) wallRects() []Rect {
	if len(w.Walls) == 0 {
		return nil
	}
	rects := make([]Rect, 0, len(w.Walls))
	for _, id := range sortedKeys(w.Walls) {
		rects = append(rects, w.Walls[id].Bounds)
	}
	return rects
}

// sortedKeys returns the keys of m in increasing order. All the passes over
// entities go through it so that a step never depends on map iteration
// order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
