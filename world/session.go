package world

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Session serializes access to a World for hosts that feed it from more than
// one goroutine (a render loop and an input callback, for example). Every
// method takes the same lock, so a step and a cut never interleave.
//
// A Session also records every input it receives into a Playthrough, so any
// session can be saved and replayed.
type Session struct {
	mu          sync.Mutex
	world       *World
	playthrough Playthrough
	pending     PlayerInput
	logger      *log.Logger
}

// NewSession validates the level and params and starts a session. A nil
// logger discards all logging.
func NewSession(level Level, params Params, releaseVersion int64,
	logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, err := NewWorld(level, params)
	if err != nil {
		logger.Error("rejected level", "level", level.Id, "err", err)
		return nil, err
	}
	s := &Session{
		world:       w,
		playthrough: NewPlaythrough(level, params, releaseVersion),
		logger:      logger.With("level", level.Id),
	}
	s.logger.Info("session started", "playthrough", s.playthrough.Id,
		"ropes", len(w.Ropes), "stars", len(w.Stars))
	return s, nil
}

// Touch queues a touch sample for the next frame. If a sample is already
// queued, the queued one is applied right away, without a simulation step,
// and t takes its place. No sample is lost and the recording replays
// exactly.
func (s *Session) Touch(t TouchEvent) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending.Touch.Phase == TouchNone {
		s.pending.Touch = t
		return nil
	}
	flushed := s.pending
	flushed.TouchOnly = true
	s.pending = PlayerInput{Touch: t}
	return s.step(flushed)
}

// Restart asks for a fresh session at the next frame.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Restart = true
}

// Tick runs one frame: the queued input, then one simulation step. dt is
// only informative, the step always lasts FixedDt.
func (s *Session) Tick(dt time.Duration) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	input := s.pending
	s.pending = PlayerInput{}
	return s.step(input)
}

// Step runs one frame with an explicit input, bypassing the queue.
func (s *Session) Step(input PlayerInput) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(input)
}

func (s *Session) step(input PlayerInput) []Event {
	s.playthrough.History = append(s.playthrough.History, input)
	if input.Restart {
		s.logger.Info("session restarted", "frame", s.world.Frame)
	}
	events := s.world.Step(input)
	s.log(events)
	return events
}

func (s *Session) log(events []Event) {
	for _, e := range events {
		switch e := e.(type) {
		case RopeCut:
			s.logger.Debug("rope cut", "rope", e.Cut.Rope, "frame",
				e.Cut.Frame, "x", e.Cut.Point.X, "y", e.Cut.Point.Y)
		case BubblePopped:
			s.logger.Debug("bubble popped", "bubble", e.Bubble)
		case StarCollected:
			s.logger.Debug("star collected", "star", e.Star)
		case GameWon:
			s.logger.Info("game won", "frame", e.Frame,
				"stars", s.world.StarsCollected())
		case GameLost:
			s.logger.Info("game lost", "frame", e.Frame)
		case SpikeHit:
			s.logger.Info("spike hit", "spike", e.Spike, "frame", e.Frame)
		case FrameUpdate:
		}
	}
}

// Snapshot returns a copy of the world that the caller can read freely
// while the session keeps running.
func (s *Session) Snapshot() World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Clone()
}

// Playthrough returns a copy of the recording so far.
func (s *Session) Playthrough() *Playthrough {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playthrough.Clone()
}
