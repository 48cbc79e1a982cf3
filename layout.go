package main

import (
	"image"
	"math"

	"github.com/marisvali/cutrope/world"
)

// Visual areas
// ------------
//
// - The play area: the space the World is aware of. Levels are designed for
// a play area of PlayAreaWidth x PlayAreaHeight and are scaled to fit it if
// they are not.
// - The HUD: the strip above the play area with the level name and the
// stars.
// - The game area: the HUD and the play area. Has a fixed size, known at
// compile time.
// - The debug area: a strip below the game area with the playback controls.
// Its size is known at compile time but the decision to display it or not
// happens at runtime.
// - The screen: contains the game area, the debug area if it is displayed
// and any margins necessary to fill in the application window on the OS. Its
// size is known only at run time.

const PlayAreaWidth = 400
const PlayAreaHeight = 800
const HudHeight = 60
const GameWidth = PlayAreaWidth
const GameHeight = HudHeight + PlayAreaHeight
const DebugHeight = 40

// The areas below are all relative to the game area and known at compile time.
var playScreenWorldArea = image.Rect(0, HudHeight, PlayAreaWidth, GameHeight)
var endScreenRestartButton = image.Rect(40, 520, 140, 580)
var endScreenNextButton = image.Rect(150, 520, 250, 580)
var endScreenHomeButton = image.Rect(260, 520, 360, 580)

const levelButtonSize = 60
const levelButtonGap = 15
const levelButtonColumns = 5

type LevelButton struct {
	LevelId int64
	Area    image.Rectangle
}

// LevelButtons lays out one button per level in rows of levelButtonColumns,
// centered horizontally in the game area.
func LevelButtons(ids []int64) []LevelButton {
	rowWidth := levelButtonColumns*levelButtonSize +
		(levelButtonColumns-1)*levelButtonGap
	left := (GameWidth - rowWidth) / 2
	top := HudHeight + 100
	buttons := make([]LevelButton, 0, len(ids))
	for i, id := range ids {
		x := left + (i%levelButtonColumns)*(levelButtonSize+levelButtonGap)
		y := top + (i/levelButtonColumns)*(levelButtonSize+levelButtonGap)
		buttons = append(buttons, LevelButton{
			LevelId: id,
			Area:    image.Rect(x, y, x+levelButtonSize, y+levelButtonSize),
		})
	}
	return buttons
}

// Viewport maps world coordinates to pixels of some image and back.
type Viewport struct {
	Origin image.Point
	Scale  float64
}

// NewViewport fits a level of the given size inside area, keeping its
// aspect ratio and anchoring it at the top-left corner.
func NewViewport(area image.Rectangle, levelWidth, levelHeight float64) Viewport {
	scale := 1.0
	if levelWidth > 0 && levelHeight > 0 {
		scale = math.Min(float64(area.Dx())/levelWidth,
			float64(area.Dy())/levelHeight)
	}
	return Viewport{Origin: area.Min, Scale: scale}
}

func (v Viewport) ToWorld(pt image.Point) world.Pt {
	return world.Pt{
		X: float64(pt.X-v.Origin.X) / v.Scale,
		Y: float64(pt.Y-v.Origin.Y) / v.Scale,
	}
}

func (v Viewport) ToPixels(p world.Pt) (x, y float32) {
	return float32(float64(v.Origin.X) + p.X*v.Scale),
		float32(float64(v.Origin.Y) + p.Y*v.Scale)
}

func (v Viewport) Len(l float64) float32 {
	return float32(l * v.Scale)
}

func (g *Gui) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	defer g.HandlePanic()

	// I receive the application window's actual width and height, via
	// outsideWidth, outsideHeight. I have to return the size I want, in pixels,
	// for the bitmap that will be drawn in the window.
	//
	// The way it works:
	// - I can return any size I want.
	// - In the Draw method, I will receive the screen bitmap, which will have
	// the size in pixels that I return here.
	// - The screen bitmap from Draw method will be scaled automatically by
	// ebitengine to fit inside the window, preserving its aspect ratio.
	//
	// What I want:
	// - Cover the entire window with some background.
	// - Have a "game area" that I can reason about easily, no matter the
	// aspect ratio or the resolution of the user's screen. Taller than wider,
	// like a smartphone held vertically.
	//
	// Solution:
	// - Have a fixed game area.
	// - Compute screenWidth and screenHeight so that the aspect ratio of the
	// screen bitmap is the same as the aspect ratio of the game window.
	// - Compute screenWidth and screenHeight such that the game area is as
	// large as it can be, but still fits inside the screen.
	// - Add the debug area to the game area, if it is enabled.

	// The aspect ratio of a rectangle is width / height. If the window is
	// thinner than the game, the game fills the width of the window and
	// there is space left at the top and the bottom. Otherwise the game
	// fills the height.
	outsideAspectRatio := float64(outsideWidth) / float64(outsideHeight)
	gameWidth := GameWidth
	gameHeight := GameHeight
	if g.enableDebugAreas {
		gameHeight += DebugHeight
	}
	gameAspectRatio := float64(gameWidth) / float64(gameHeight)
	if outsideAspectRatio < gameAspectRatio {
		screenWidth = gameWidth
		screenHeight = int(float64(screenWidth) / outsideAspectRatio)
	} else {
		screenHeight = gameHeight
		screenWidth = int(float64(screenHeight) * outsideAspectRatio)
	}

	// Define the game area relative to the total screen area.
	g.gameArea.Min.X = (screenWidth - gameWidth) / 2
	g.gameArea.Min.Y = 0
	g.gameArea.Max.X = g.gameArea.Min.X + GameWidth
	g.gameArea.Max.Y = g.gameArea.Min.Y + GameHeight

	// Define the debug area relative to the total screen area.
	g.debugArea = image.Rect(
		g.gameArea.Min.X,
		GameHeight,
		g.gameArea.Max.X,
		GameHeight+DebugHeight)
	return
}

// viewport maps the world being shown to the play area, in coordinates
// relative to the game area.
func (g *Gui) viewport() Viewport {
	return NewViewport(playScreenWorldArea, g.world.Level.Width,
		g.world.Level.Height)
}

func (g *Gui) ScreenToWorld(pt image.Point) world.Pt {
	return g.viewport().ToWorld(pt.Sub(g.gameArea.Min))
}

// The areas below are relative to the screen, because they depend on where
// the debug area is.
func (g *Gui) buttonPlaybackPlay() image.Rectangle {
	return image.Rect(
		g.debugArea.Min.X,
		g.debugArea.Min.Y,
		g.debugArea.Min.X+DebugHeight,
		g.debugArea.Max.Y)
}

func (g *Gui) buttonPlaybackBar() image.Rectangle {
	return image.Rect(
		g.debugArea.Min.X+DebugHeight+10,
		g.debugArea.Min.Y,
		g.debugArea.Max.X-10,
		g.debugArea.Max.Y)
}
