package world

type TouchPhase int64

const (
	TouchNone TouchPhase = iota
	TouchStart
	TouchMove
	TouchEnd
)

// TouchEvent is one sample of the touch stream, in world coordinates.
type TouchEvent struct {
	Phase TouchPhase
	Pos   Pt
}

// PlayerInput is everything the outside sends to the World in one frame.
// It has a fixed size so that a history of inputs can be written and read
// with encoding/binary.
type PlayerInput struct {
	Touch   TouchEvent
	Restart bool
	// TouchOnly means the input carries a touch sample that arrived in the
	// same frame as another one. The World handles the touch but doesn't
	// advance the simulation.
	TouchOnly bool
}

func (p *PlayerInput) EventOccurred() bool {
	return p.Touch.Phase != TouchNone || p.Restart
}
