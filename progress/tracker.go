package progress

import (
	"github.com/marisvali/cutrope/world"
)

type Outcome int64

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "undecided"
	}
}

// Tracker follows the events of one play session of a level and turns them
// into progress. The World reports what happens; deciding what that means
// for the player is the Tracker's job.
type Tracker struct {
	LevelId int64
	// LastLevel is the id of the last level of the catalogue. Winning it
	// unlocks nothing. Zero means the catalogue has no end.
	LastLevel int64
	Stars     int64
	Outcome   Outcome
}

func NewTracker(levelId int64, lastLevel int64) *Tracker {
	return &Tracker{LevelId: levelId, LastLevel: lastLevel}
}

// Handle consumes the events of one step or one touch. It returns true the
// first time the session ends with a win, when p has just been updated.
func (t *Tracker) Handle(p *Progress, events []world.Event) (won bool) {
	for _, e := range events {
		if t.Outcome != Undecided {
			return
		}
		switch e.(type) {
		case world.StarCollected:
			t.Stars++
		case world.GameWon:
			t.Outcome = Won
			if t.LastLevel > 0 && t.LevelId >= t.LastLevel {
				p.Record(t.LevelId, t.Stars)
			} else {
				p.Complete(t.LevelId, t.Stars)
			}
			won = true
		case world.GameLost, world.SpikeHit:
			t.Outcome = Lost
		}
	}
	return
}

// Reset starts tracking a new session of the same level.
func (t *Tracker) Reset() {
	*t = Tracker{LevelId: t.LevelId, LastLevel: t.LastLevel}
}
