// Package levels holds the catalogue of levels that ships with the game.
package levels

import (
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/marisvali/cutrope/world"
)

//go:embed levels.yaml
var embedded []byte

var ErrUnknownLevel = errors.New("unknown level")

// Catalogue is an ordered list of levels with unique ids.
type Catalogue struct {
	levels []world.Level
}

var builtin = mustParse(embedded)

func mustParse(data []byte) *Catalogue {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Errorf("embedded levels: %w", err))
	}
	return c
}

// Parse decodes a YAML list of levels and validates every one of them. The
// levels are sorted by id.
func Parse(data []byte) (*Catalogue, error) {
	var levels []world.Level
	if err := yaml.Unmarshal(data, &levels); err != nil {
		return nil, err
	}
	slices.SortFunc(levels, func(a, b world.Level) int {
		return cmp.Compare(a.Id, b.Id)
	})
	for i := range levels {
		if levels[i].Id <= 0 {
			return nil, fmt.Errorf("%w: level %q has id %d, ids start at 1",
				world.ErrInvalidLevel, levels[i].Name, levels[i].Id)
		}
		if i > 0 && levels[i].Id == levels[i-1].Id {
			return nil, fmt.Errorf("%w: duplicate level id %d",
				world.ErrInvalidLevel, levels[i].Id)
		}
		if err := levels[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &Catalogue{levels: levels}, nil
}

// Load reads a catalogue from a file, for editing levels without rebuilding
// the game.
func Load(fsys fs.FS, name string) (*Catalogue, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Builtin returns the catalogue embedded in the executable.
func Builtin() *Catalogue {
	return builtin
}

// Get returns a copy of the level with the given id. The copy can be
// modified freely.
func (c *Catalogue) Get(id int64) (world.Level, error) {
	idx, found := slices.BinarySearchFunc(c.levels, id,
		func(l world.Level, id int64) int { return cmp.Compare(l.Id, id) })
	if !found {
		return world.Level{}, fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}
	return clone(c.levels[idx]), nil
}

func (c *Catalogue) Count() int64 {
	return int64(len(c.levels))
}

// Ids returns the ids of all the levels, in increasing order.
func (c *Catalogue) Ids() []int64 {
	ids := make([]int64, len(c.levels))
	for i := range c.levels {
		ids[i] = c.levels[i].Id
	}
	return ids
}

func clone(l world.Level) world.Level {
	l.Anchors = slices.Clone(l.Anchors)
	l.Ropes = slices.Clone(l.Ropes)
	l.Stars = slices.Clone(l.Stars)
	l.Bubbles = slices.Clone(l.Bubbles)
	l.Winds = slices.Clone(l.Winds)
	l.Spikes = slices.Clone(l.Spikes)
	l.Walls = slices.Clone(l.Walls)
	return l
}

// Get returns a level from the builtin catalogue.
func Get(id int64) (world.Level, error) {
	return builtin.Get(id)
}

// Count returns the number of levels in the builtin catalogue.
func Count() int64 {
	return builtin.Count()
}
