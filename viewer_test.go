package main

import (
	"image"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marisvali/cutrope/levels"
	"github.com/marisvali/cutrope/world"
)

func TestTouchFromPointer(t *testing.T) {
	pos := world.Pt{X: 10, Y: 20}

	_, ok := TouchFromPointer(PointerState{Pos: pos})
	assert.False(t, ok)

	touch, ok := TouchFromPointer(PointerState{Pressed: true, JustPressed: true, Pos: pos})
	assert.True(t, ok)
	assert.Equal(t, world.TouchEvent{Phase: world.TouchStart, Pos: pos}, touch)

	touch, _ = TouchFromPointer(PointerState{Pressed: true, Pos: pos})
	assert.Equal(t, world.TouchMove, touch.Phase)

	touch, _ = TouchFromPointer(PointerState{JustReleased: true, Pos: pos})
	assert.Equal(t, world.TouchEnd, touch.Phase)
}

func TestViewport(t *testing.T) {
	// A level of the designed size maps one to one.
	v := NewViewport(playScreenWorldArea, PlayAreaWidth, PlayAreaHeight)
	assert.Equal(t, 1.0, v.Scale)
	assert.Equal(t, world.Pt{X: 0, Y: 0}, v.ToWorld(image.Pt(0, HudHeight)))
	x, y := v.ToPixels(world.Pt{X: 200, Y: 400})
	assert.Equal(t, float32(200), x)
	assert.Equal(t, float32(HudHeight+400), y)

	// A larger level shrinks to fit, keeping its aspect ratio.
	v = NewViewport(playScreenWorldArea, 800, 800)
	assert.Equal(t, 0.5, v.Scale)
	p := v.ToWorld(image.Pt(100, HudHeight+300))
	assert.Equal(t, world.Pt{X: 200, Y: 600}, p)
	x, y = v.ToPixels(p)
	assert.Equal(t, float32(100), x)
	assert.Equal(t, float32(HudHeight+300), y)
	assert.Equal(t, float32(12.5), v.Len(25))

	// An empty level doesn't divide by zero.
	assert.Equal(t, 1.0, NewViewport(playScreenWorldArea, 0, 0).Scale)
}

func TestLevelButtons(t *testing.T) {
	buttons := LevelButtons(levels.Builtin().Ids())
	require.Len(t, buttons, 10)
	assert.Equal(t, int64(1), buttons[0].LevelId)
	assert.Equal(t, int64(10), buttons[9].LevelId)

	// Two rows of five, inside the game area, never overlapping.
	assert.Equal(t, buttons[0].Area.Min.Y, buttons[4].Area.Min.Y)
	assert.Less(t, buttons[4].Area.Max.Y, buttons[5].Area.Min.Y)
	gameArea := image.Rect(0, 0, GameWidth, GameHeight)
	for i, b := range buttons {
		assert.True(t, b.Area.In(gameArea))
		for _, other := range buttons[i+1:] {
			assert.False(t, b.Area.Overlaps(other.Area))
		}
	}
}

func TestAnimation(t *testing.T) {
	a := NewAnimation(100 * time.Millisecond)
	assert.Equal(t, int64(6), a.NFrames)
	assert.Equal(t, 0.0, a.Progress())
	for range 6 {
		assert.False(t, a.Done())
		a.Step()
	}
	assert.True(t, a.Done())
	assert.Equal(t, 1.0, a.Progress())
	// It stays done.
	a.Step()
	assert.Equal(t, 1.0, a.Progress())

	assert.Equal(t, int64(1), NewAnimation(0).NFrames)
}

func TestVisWorld(t *testing.T) {
	v := NewVisWorld()
	cut := world.CutResult{
		Rope:  "rope1",
		Upper: world.Segment{End: world.Pt{X: 0, Y: 50}},
		Lower: world.Segment{Start: world.Pt{X: 0, Y: 50}, End: world.Pt{X: 0, Y: 100}},
		Point: world.Pt{X: 0, Y: 50},
	}
	v.Step([]world.Event{
		world.FrameUpdate{Frame: 1},
		world.RopeCut{Cut: cut},
		world.StarCollected{Star: "star1", Pos: world.Pt{X: 5, Y: 5}},
	})
	require.Len(t, v.Temporary, 3)
	assert.Equal(t, RetractingRope, v.Temporary[0].Kind)
	assert.Equal(t, cut.Upper, v.Temporary[0].Piece)
	assert.Equal(t, FallingRope, v.Temporary[1].Kind)
	assert.Equal(t, cut.Lower, v.Temporary[1].Piece)
	assert.Equal(t, Sparkle, v.Temporary[2].Kind)

	v.Step([]world.Event{world.BubblePopped{Bubble: "bubble1"}})
	require.Len(t, v.Temporary, 4)

	// Effects go away once their animation is over, the longest lasts
	// less than a second.
	for range 60 {
		v.Step(nil)
	}
	assert.Empty(t, v.Temporary)
}

func TestLoadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"config.yaml": {Data: []byte("StartState: Play\nStartLevel: 3\n" +
			"ProgressStore: mysql\n")},
		"broken.yaml": {Data: []byte("StartLevel: [\n")},
	}
	var c Config
	LoadYAML(fsys, "config.yaml", &c)
	assert.Equal(t, "Play", c.StartState)
	assert.Equal(t, int64(3), c.StartLevel)
	assert.Equal(t, "mysql", c.ProgressStore)

	assert.Panics(t, func() { LoadYAML(fsys, "broken.yaml", &c) })
	assert.Panics(t, func() { LoadYAML(fsys, "missing.yaml", &c) })

	assert.True(t, FileExists(fsys, "config.yaml"))
	assert.False(t, FileExists(fsys, "missing.yaml"))
}

func TestEmbeddedData(t *testing.T) {
	var c Config
	LoadYAML(&embeddedFiles, "data/config.yaml", &c)
	assert.Equal(t, "LevelSelect", c.StartState)
	assert.Equal(t, "file", c.ProgressStore)

	var dev Config
	LoadYAML(&embeddedFiles, "data/config-dev.yaml", &dev)
	params, err := world.LoadParams(&embeddedFiles, dev.ParamsFile)
	require.NoError(t, err)
	assert.Equal(t, world.DefaultParams(), params)

	catalogue, err := levels.Load(&embeddedFiles, dev.LevelsFile)
	require.NoError(t, err)
	assert.Equal(t, levels.Builtin().Ids(), catalogue.Ids())
}
