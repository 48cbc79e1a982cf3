package world

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidLevel is wrapped by every error that rejects a Level.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrInvalidParams is wrapped by every error that rejects Params.
	ErrInvalidParams = errors.New("invalid params")
)

// Level is the declarative description of a level. It is never modified by
// the World. One Level produces one fresh World per play session.
type Level struct {
	Id         int64       `yaml:"Id"`
	Name       string      `yaml:"Name"`
	Width      float64     `yaml:"Width"`
	Height     float64     `yaml:"Height"`
	Anchors    []AnchorDef `yaml:"Anchors"`
	Ropes      []RopeDef   `yaml:"Ropes"`
	CandyStart LevelPt     `yaml:"CandyStart"`
	Goal       LevelPt     `yaml:"Goal"`
	GoalRadius float64     `yaml:"GoalRadius,omitempty"`
	Stars      []StarDef   `yaml:"Stars,omitempty"`
	Bubbles    []BubbleDef `yaml:"Bubbles,omitempty"`
	Winds      []WindDef   `yaml:"Winds,omitempty"`
	Spikes     []RectDef   `yaml:"Spikes,omitempty"`
	Walls      []RectDef   `yaml:"Walls,omitempty"`
}

type LevelPt struct {
	X float64 `yaml:"X"`
	Y float64 `yaml:"Y"`
}

func (p LevelPt) Pt() Pt {
	return Pt{X: p.X, Y: p.Y}
}

type AnchorDef struct {
	Id string  `yaml:"Id"`
	X  float64 `yaml:"X"`
	Y  float64 `yaml:"Y"`
}

// RopeDef binds a rope between an anchor and the candy. Stiffness and Damping
// are optional; zero means "use the value from Params".
type RopeDef struct {
	Id        string  `yaml:"Id,omitempty"`
	Anchor    string  `yaml:"Anchor"`
	Stiffness float64 `yaml:"Stiffness,omitempty"`
	Damping   float64 `yaml:"Damping,omitempty"`
}

type StarDef struct {
	Id string  `yaml:"Id,omitempty"`
	X  float64 `yaml:"X"`
	Y  float64 `yaml:"Y"`
}

type BubbleDef struct {
	Id     string  `yaml:"Id,omitempty"`
	X      float64 `yaml:"X"`
	Y      float64 `yaml:"Y"`
	Radius float64 `yaml:"Radius"`
}

// WindDef describes a wind zone. Range and Strength are optional; zero means
// "use the value from Params".
type WindDef struct {
	Id       string  `yaml:"Id,omitempty"`
	X        float64 `yaml:"X"`
	Y        float64 `yaml:"Y"`
	DirX     float64 `yaml:"DirX"`
	DirY     float64 `yaml:"DirY"`
	Range    float64 `yaml:"Range,omitempty"`
	Strength float64 `yaml:"Strength,omitempty"`
}

// RectDef describes an axis-aligned rectangle by its top-left corner and
// its size.
type RectDef struct {
	Id     string  `yaml:"Id,omitempty"`
	X      float64 `yaml:"X"`
	Y      float64 `yaml:"Y"`
	Width  float64 `yaml:"Width"`
	Height float64 `yaml:"Height"`
}

func (r RectDef) Rect() Rect {
	return NewRect(r.X, r.Y, r.Width, r.Height)
}

func defaultId(id string, prefix string, idx int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s%d", prefix, idx+1)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

func finiteNums(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Validate checks the referential integrity and the geometry of the level.
// A level that fails validation must never be simulated.
func (l *Level) Validate() error {
	if !(l.Width > 0 && l.Height > 0) {
		return invalid("level %d has empty bounds %fx%f", l.Id, l.Width,
			l.Height)
	}
	if !finiteNums(l.CandyStart.X, l.CandyStart.Y, l.Goal.X, l.Goal.Y,
		l.GoalRadius) || l.GoalRadius < 0 {
		return invalid("level %d has a bad candy start or goal", l.Id)
	}

	seen := map[string]bool{}
	unique := func(kind string, id string) error {
		key := kind + "/" + id
		if seen[key] {
			return invalid("duplicate %s id %q", kind, id)
		}
		seen[key] = true
		return nil
	}

	anchors := map[string]bool{}
	for i, a := range l.Anchors {
		if a.Id == "" {
			return invalid("anchor %d has no id", i)
		}
		if err := unique("anchor", a.Id); err != nil {
			return err
		}
		if !finiteNums(a.X, a.Y) {
			return invalid("anchor %q has a non-finite position", a.Id)
		}
		anchors[a.Id] = true
	}
	for i, r := range l.Ropes {
		id := defaultId(r.Id, "rope", i)
		if err := unique("rope", id); err != nil {
			return err
		}
		if !anchors[r.Anchor] {
			return invalid("rope %q references unknown anchor %q", id,
				r.Anchor)
		}
		if r.Stiffness != 0 || r.Damping != 0 {
			stiffness, damping := r.Stiffness, r.Damping
			if stiffness == 0 {
				stiffness = 1
			}
			if err := validateRopeConstants(stiffness, damping); err != nil {
				return invalid("rope %q: %v", id, err)
			}
		}
	}
	for i, s := range l.Stars {
		if err := unique("star", defaultId(s.Id, "star", i)); err != nil {
			return err
		}
		if !finiteNums(s.X, s.Y) {
			return invalid("star %d has a non-finite position", i)
		}
	}
	for i, b := range l.Bubbles {
		if err := unique("bubble", defaultId(b.Id, "bubble", i)); err != nil {
			return err
		}
		if !finiteNums(b.X, b.Y, b.Radius) || b.Radius <= 0 {
			return invalid("bubble %d must have a positive radius", i)
		}
	}
	for i, w := range l.Winds {
		if err := unique("wind", defaultId(w.Id, "wind", i)); err != nil {
			return err
		}
		if !finiteNums(w.X, w.Y, w.DirX, w.DirY, w.Range, w.Strength) {
			return invalid("wind zone %d has non-finite values", i)
		}
		if math.Hypot(w.DirX, w.DirY) < epsilon {
			return invalid("wind zone %d has no direction", i)
		}
		if w.Range < 0 {
			return invalid("wind zone %d has a negative range", i)
		}
	}
	for i, s := range l.Spikes {
		if err := unique("spike", defaultId(s.Id, "spike", i)); err != nil {
			return err
		}
		if !finiteNums(s.X, s.Y, s.Width, s.Height) ||
			s.Width <= 0 || s.Height <= 0 {
			return invalid("spike %d must have a positive size", i)
		}
	}
	for i, w := range l.Walls {
		if err := unique("wall", defaultId(w.Id, "wall", i)); err != nil {
			return err
		}
		if !finiteNums(w.X, w.Y, w.Width, w.Height) ||
			w.Width <= 0 || w.Height <= 0 {
			return invalid("wall %d must have a positive size", i)
		}
	}
	return nil
}
