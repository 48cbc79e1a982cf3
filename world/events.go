package world

// Event is something that happened during a step or a touch, reported to the
// outside (GUI, audio, progress). The set of events is closed: every event
// type is declared in this file. Consumers are expected to type-switch over
// all of them.
type Event interface {
	isEvent()
}

// FrameUpdate is emitted once per simulation step while the session is being
// played. It is the signal to redraw.
type FrameUpdate struct {
	Frame int64
}

// StarCollected is emitted once per star, the first time the candy touches
// it.
type StarCollected struct {
	Star StarId
	Pos  Pt
}

// GameWon is emitted when the candy reaches the goal.
type GameWon struct {
	Frame int64
}

// GameLost is emitted when the candy leaves the level bounds.
type GameLost struct {
	Frame int64
}

// SpikeHit is emitted when the candy touches a spike. It ends the session
// just like GameLost, and is emitted instead of it.
type SpikeHit struct {
	Spike SpikeId
	Frame int64
}

// RopeCut is emitted when a touch severs a rope.
type RopeCut struct {
	Cut CutResult
}

// BubblePopped is emitted when a tap pops a bubble.
type BubblePopped struct {
	Bubble BubbleId
	Pos    Pt
}

func (FrameUpdate) isEvent()   {}
func (StarCollected) isEvent() {}
func (GameWon) isEvent()       {}
func (GameLost) isEvent()      {}
func (SpikeHit) isEvent()      {}
func (RopeCut) isEvent()       {}
func (BubblePopped) isEvent()  {}

// IsTerminal reports whether e ends the session.
func IsTerminal(e Event) bool {
	switch e.(type) {
	case GameWon, GameLost, SpikeHit:
		return true
	default:
		return false
	}
}
