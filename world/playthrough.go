package world

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// InputVersion is the version of the byte representation of the Playthrough
// structure. If the Playthrough structure changes such that serializing it
// produces a different array of bytes, then InputVersion must change as well.
// An executable can replay any playthrough with the same InputVersion and
// SimulationVersion as its own.
const InputVersion = 1

// Playthrough represents all the input sent to a World during the execution
// of a level. Given this input and a compatible simulation, the same output
// is generated in the end.
type Playthrough struct {
	InputVersion      int64
	SimulationVersion int64
	ReleaseVersion    int64
	Level             Level
	Params            Params
	Id                uuid.UUID
	History           []PlayerInput
}

// NewPlaythrough starts an empty recording of the level.
func NewPlaythrough(level Level, params Params, releaseVersion int64) Playthrough {
	return Playthrough{
		InputVersion:      InputVersion,
		SimulationVersion: SimulationVersion,
		ReleaseVersion:    releaseVersion,
		Level:             level,
		Params:            params,
		Id:                uuid.New(),
	}
}

func (p *Playthrough) Serialize() ([]byte, error) {
	level, err := yaml.Marshal(p.Level)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	for _, data := range []any{p.InputVersion, p.SimulationVersion,
		p.ReleaseVersion} {
		if err = Serialize(buf, data); err != nil {
			return nil, err
		}
	}
	if err = SerializeBytes(buf, level); err != nil {
		return nil, err
	}
	if err = Serialize(buf, p.Params); err != nil {
		return nil, err
	}
	if err = Serialize(buf, p.Id); err != nil {
		return nil, err
	}
	if err = SerializeSlice(buf, p.History); err != nil {
		return nil, err
	}
	return Zip(buf.Bytes())
}

func (p *Playthrough) Clone() *Playthrough {
	clone := *p
	clone.Level = cloneLevel(p.Level)
	clone.History = slices.Clone(p.History)
	return &clone
}

func DeserializePlaythrough(data []byte) (p Playthrough, err error) {
	raw, err := Unzip(data)
	if err != nil {
		return p, err
	}
	buf := bytes.NewBuffer(raw)
	if err = Deserialize(buf, &p.InputVersion); err != nil {
		return p, err
	}
	if p.InputVersion != InputVersion {
		return p, fmt.Errorf("can't deserialize this playthrough - we are at "+
			"InputVersion %d and playthrough was generated with InputVersion "+
			"%d", InputVersion, p.InputVersion)
	}
	if err = Deserialize(buf, &p.SimulationVersion); err != nil {
		return p, err
	}
	if err = Deserialize(buf, &p.ReleaseVersion); err != nil {
		return p, err
	}
	level, err := DeserializeBytes(buf)
	if err != nil {
		return p, err
	}
	if err = yaml.Unmarshal(level, &p.Level); err != nil {
		return p, fmt.Errorf("decoding playthrough level: %w", err)
	}
	if err = Deserialize(buf, &p.Params); err != nil {
		return p, err
	}
	if err = Deserialize(buf, &p.Id); err != nil {
		return p, err
	}
	err = DeserializeSlice(buf, &p.History)
	return p, err
}

// NewWorldFromPlaythrough builds the World the playthrough was recorded on.
// The recording only makes sense for the simulation that produced it.
func NewWorldFromPlaythrough(p Playthrough) (*World, error) {
	if p.SimulationVersion != SimulationVersion {
		return nil, fmt.Errorf("can't replay this playthrough - we are at "+
			"SimulationVersion %d and playthrough was generated with "+
			"SimulationVersion %d", SimulationVersion, p.SimulationVersion)
	}
	return NewWorld(p.Level, p.Params)
}

// Replay runs the first nFrames inputs of the playthrough on a fresh World.
func Replay(p *Playthrough, nFrames int) (*World, error) {
	w, err := NewWorldFromPlaythrough(*p)
	if err != nil {
		return nil, err
	}
	nFrames = min(nFrames, len(p.History))
	for i := range nFrames {
		w.Step(p.History[i])
	}
	return w, nil
}
