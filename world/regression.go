package world

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// StateBytes is an array of bytes that represent the current state of the
// World, as perceived by the outside. If two Worlds have the same StateBytes
// they are considered "the same", even though they may be implemented
// differently.
//
// The world is "the same" if it has:
// - the same session state and frame
// - the candy at the same position, with the same velocity
// - the same ropes still attached
// - the same stars collected and the same bubbles active
//
// Entities are written in id order, so the bytes don't depend on map
// iteration order.
func (w *World) StateBytes() []byte {
	buf := new(bytes.Buffer)
	// Writing to a bytes.Buffer never fails.
	_ = Serialize(buf, int64(w.State))
	_ = Serialize(buf, w.Frame)
	_ = Serialize(buf, w.Candy.Pos)
	_ = Serialize(buf, w.Candy.Vel)

	_ = Serialize(buf, int64(len(w.Ropes)))
	for _, id := range sortedKeys(w.Ropes) {
		_ = SerializeBytes(buf, []byte(id))
	}
	for _, id := range sortedKeys(w.Stars) {
		_ = Serialize(buf, w.Stars[id].Collected)
	}
	for _, id := range sortedKeys(w.Bubbles) {
		_ = Serialize(buf, w.Bubbles[id].Active)
		_ = Serialize(buf, w.Bubbles[id].CapturedByBody)
	}
	return buf.Bytes()
}

// RegressionId returns a string which uniquely identifies the playthrough.
// It is a hash of all the states of the World. It is meant to check if the
// state of the World at each frame in the playthrough is the same after a
// refactorization of the World.
//
// RegressionId is meant to be used this way:
// - Compute the RegressionId for a playthrough.
// - Refactor the implementation of the World.
// - Compute the RegressionId for the same playthrough. It uses the exact same
// level, params and player inputs, but the new World implementation.
// - If the RegressionId hasn't changed, the playthroughs are (pretty much)
// identical. The refactoring of World did not alter the playthrough.
// - If the RegressionId has changed, something in the refactoring is now
// causing the play experience to be different.
func RegressionId(p *Playthrough) (string, error) {
	hash := sha256.New()

	w, err := NewWorldFromPlaythrough(*p)
	if err != nil {
		return "", err
	}
	hash.Write(w.StateBytes())

	for i := range p.History {
		w.Step(p.History[i])
		hash.Write(w.StateBytes())
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
