// Package progress keeps track of what the player has achieved across
// sessions: which levels are completed, how many stars each one earned and
// which levels are unlocked. It also keeps the player's settings.
package progress

import (
	"maps"
	"slices"
)

// FirstLevel is always unlocked.
const FirstLevel = 1

type LevelProgress struct {
	Completed bool  `yaml:"Completed"`
	Stars     int64 `yaml:"Stars"`
}

type Settings struct {
	Sound   bool `yaml:"Sound"`
	Music   bool `yaml:"Music"`
	Haptics bool `yaml:"Haptics"`
}

func DefaultSettings() Settings {
	return Settings{Sound: true, Music: true, Haptics: true}
}

// Progress rules
// - A level is unlocked if it has an entry in Levels. The first level is
// unlocked even without an entry.
// - Completing a level unlocks the next one.
// - The stars of a level never decrease. Replaying a level with fewer stars
// keeps the best result.
type Progress struct {
	Levels   map[int64]LevelProgress `yaml:"Levels"`
	Settings Settings                `yaml:"Settings"`
}

// New returns the progress of a player who never played.
func New() Progress {
	return Progress{
		Levels:   map[int64]LevelProgress{FirstLevel: {}},
		Settings: DefaultSettings(),
	}
}

func (p *Progress) Unlocked(levelId int64) bool {
	if levelId == FirstLevel {
		return true
	}
	_, ok := p.Levels[levelId]
	return ok
}

// Complete records a win of the level with the given number of stars and
// unlocks the level after it.
func (p *Progress) Complete(levelId int64, stars int64) {
	p.Record(levelId, stars)
	p.Unlock(levelId + 1)
}

// Record records a win of the level without unlocking anything else. It is
// what winning the last level of the catalogue does.
func (p *Progress) Record(levelId int64, stars int64) {
	if p.Levels == nil {
		p.Levels = map[int64]LevelProgress{}
	}
	old := p.Levels[levelId]
	p.Levels[levelId] = LevelProgress{
		Completed: true,
		Stars:     max(old.Stars, stars),
	}
}

// Unlock makes a level playable. Unlocking a level twice keeps its results.
func (p *Progress) Unlock(levelId int64) {
	if p.Levels == nil {
		p.Levels = map[int64]LevelProgress{}
	}
	if _, ok := p.Levels[levelId]; !ok {
		p.Levels[levelId] = LevelProgress{}
	}
}

func (p *Progress) TotalStars() (total int64) {
	for _, l := range p.Levels {
		total += l.Stars
	}
	return
}

// Reset forgets all the levels but keeps the settings.
func (p *Progress) Reset() {
	p.Levels = map[int64]LevelProgress{FirstLevel: {}}
}

// UnlockedLevels returns the ids of the unlocked levels in increasing order.
func (p *Progress) UnlockedLevels() []int64 {
	ids := slices.Sorted(maps.Keys(p.Levels))
	if !slices.Contains(ids, FirstLevel) {
		ids = slices.Insert(ids, 0, FirstLevel)
	}
	return ids
}

func (p *Progress) Clone() Progress {
	c := *p
	c.Levels = maps.Clone(p.Levels)
	return c
}
