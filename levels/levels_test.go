package levels

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marisvali/cutrope/world"
)

func TestBuiltin(t *testing.T) {
	assert.Equal(t, int64(10), Count())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Builtin().Ids())

	l, err := Get(1)
	require.NoError(t, err)
	assert.Equal(t, "First Bite", l.Name)
	assert.Len(t, l.Ropes, 2)
	assert.Len(t, l.Stars, 3)

	l, err = Get(10)
	require.NoError(t, err)
	assert.Equal(t, "Grand Finale", l.Name)
	assert.Len(t, l.Bubbles, 2)
	assert.Len(t, l.Winds, 1)
	assert.Len(t, l.Spikes, 2)

	_, err = Get(11)
	assert.ErrorIs(t, err, ErrUnknownLevel)
	_, err = Get(0)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestBuiltin_AllPlayable(t *testing.T) {
	// Every level builds a world and survives a few seconds untouched.
	for _, id := range Builtin().Ids() {
		l, err := Get(id)
		require.NoError(t, err)
		w, err := world.NewWorld(l, world.DefaultParams())
		require.NoError(t, err, "level %d", id)
		for range 180 {
			w.Step(world.PlayerInput{})
		}
		assert.Equal(t, world.Playing, w.State, "level %d", id)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	l, err := Get(1)
	require.NoError(t, err)
	l.Anchors[0].X = -1000
	l2, err := Get(1)
	require.NoError(t, err)
	assert.Equal(t, 150.0, l2.Anchors[0].X)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
- Id: 2
  Name: b
  Width: 400
  Height: 800
  Anchors: [{Id: a, X: 100, Y: 100}]
  Ropes: [{Anchor: a}]
  CandyStart: {X: 100, Y: 200}
  Goal: {X: 200, Y: 600}
- Id: 1
  Name: a
  Width: 400
  Height: 800
  CandyStart: {X: 100, Y: 200}
  Goal: {X: 200, Y: 600}
`))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, c.Ids())

	_, err = Parse([]byte(`
- Id: 1
  Width: 400
  Height: 800
- Id: 1
  Width: 400
  Height: 800
`))
	assert.ErrorIs(t, err, world.ErrInvalidLevel)

	_, err = Parse([]byte(`
- Id: 1
  Width: 400
  Height: 800
  Ropes: [{Anchor: nowhere}]
`))
	assert.ErrorIs(t, err, world.ErrInvalidLevel)

	_, err = Parse([]byte(`- Id: 0`))
	assert.ErrorIs(t, err, world.ErrInvalidLevel)

	_, err = Parse([]byte(`not: [a list`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"levels.yaml": {Data: embedded}}
	c, err := Load(fsys, "levels.yaml")
	require.NoError(t, err)
	assert.Equal(t, Count(), c.Count())

	_, err = Load(fsys, "missing.yaml")
	assert.Error(t, err)
}
