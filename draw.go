package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/marisvali/cutrope/world"
)

var (
	colorBackground = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	colorPlayArea   = color.NRGBA{R: 230, G: 237, B: 240, A: 255}
	colorHud        = color.NRGBA{R: 60, G: 70, B: 90, A: 255}
	colorText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorDarkText   = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	colorRope       = color.NRGBA{R: 130, G: 90, B: 50, A: 255}
	colorAnchor     = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	colorCandy      = color.NRGBA{R: 230, G: 60, B: 120, A: 255}
	colorGoal       = color.NRGBA{R: 90, G: 180, B: 70, A: 255}
	colorStar       = color.NRGBA{R: 250, G: 200, B: 30, A: 255}
	colorBubble     = color.NRGBA{R: 120, G: 190, B: 250, A: 120}
	colorWind       = color.NRGBA{R: 150, G: 150, B: 230, A: 90}
	colorSpike      = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	colorWall       = color.NRGBA{R: 110, G: 100, B: 90, A: 255}
	colorOverlay    = color.NRGBA{R: 0, G: 0, B: 0, A: 140}
	colorButton     = color.NRGBA{R: 70, G: 130, B: 200, A: 255}
	colorLocked     = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
	colorFinger     = color.NRGBA{R: 0, G: 0, B: 0, A: 100}
)

func (g *Gui) Draw(screen *ebiten.Image) {
	defer g.HandlePanic()

	// The screen bitmap has the aspect ratio of the application window. We fill
	// it with some background. Then, we select the area inside of screen on
	// which we draw all the actually interesting elements of our game.
	screen.Fill(colorBackground)
	game := SubImage(screen, g.gameArea)

	switch g.state {
	case LevelSelect:
		g.DrawLevelSelect(game)
	case PlayScreen, Playback, DebugCrash:
		g.DrawPlayScreen(game)
	case GameOverScreen:
		g.DrawPlayScreen(game)
		g.DrawEndScreen(game, "The candy is lost")
	case GameWonScreen:
		g.DrawPlayScreen(game)
		g.DrawEndScreen(game, fmt.Sprintf("Om nom nom! %d/%d stars",
			g.world.StarsCollected(), len(g.world.Stars)))
	default:
		panic("unhandled default case")
	}

	if g.enableDebugAreas {
		g.DrawDebugControlsHorizontal(SubImage(screen, g.debugArea))
	}
}

func (g *Gui) DrawLevelSelect(screen *ebiten.Image) {
	screen.Fill(colorPlayArea)
	hud := SubImage(screen, image.Rect(0, 0, GameWidth, HudHeight))
	hud.Fill(colorHud)
	DrawText(hud, g.defaultFont, fmt.Sprintf("Stars: %d",
		g.progress.TotalStars()), true, true, colorText)

	sound := "off"
	if g.progress.Settings.Sound {
		sound = "on"
	}
	DrawText(SubImage(screen, image.Rect(0, GameHeight-60, GameWidth,
		GameHeight-20)), g.smallFont, "Sound: "+sound+" (S)", true, true,
		colorDarkText)

	for _, b := range g.levelButtons {
		clr := colorLocked
		if g.progress.Unlocked(b.LevelId) {
			clr = colorButton
		}
		FillArea(screen, b.Area, clr)
		label := SubImage(screen, b.Area)
		DrawText(label, g.defaultFont, fmt.Sprintf("%d", b.LevelId), true,
			true, colorText)
		stars := SubImage(screen, image.Rect(b.Area.Min.X, b.Area.Max.Y,
			b.Area.Max.X, b.Area.Max.Y+levelButtonGap))
		if s := g.progress.Levels[b.LevelId].Stars; s > 0 {
			DrawText(stars, g.smallFont, strings.Repeat("*", int(s)), true,
				true, colorDarkText)
		}
	}
}

func (g *Gui) DrawPlayScreen(screen *ebiten.Image) {
	hud := SubImage(screen, image.Rect(0, 0, GameWidth, HudHeight))
	hud.Fill(colorHud)
	name := fmt.Sprintf("%d. %s", g.world.Level.Id, g.world.Level.Name)
	DrawText(SubImage(hud, image.Rect(10, 0, GameWidth-90, HudHeight)),
		g.smallFont, name, false, true, colorText)
	DrawText(SubImage(hud, image.Rect(GameWidth-80, 0, GameWidth, HudHeight)),
		g.smallFont, fmt.Sprintf("* %d/%d", g.world.StarsCollected(),
			len(g.world.Stars)), false, true, colorText)

	play := SubImage(screen, playScreenWorldArea)
	play.Fill(colorPlayArea)
	c := Canvas{Img: play, Vp: NewViewport(image.Rect(0, 0,
		playScreenWorldArea.Dx(), playScreenWorldArea.Dy()),
		g.world.Level.Width, g.world.Level.Height)}
	w := &g.world

	// Static things first, then what the candy interacts with, then the
	// candy itself on top.
	for _, wall := range w.Walls {
		c.FillRect(wall.Bounds, colorWall)
	}
	for _, s := range w.Spikes {
		c.FillRect(s.Bounds, colorSpike)
	}
	for _, z := range w.Winds {
		if !z.Active {
			continue
		}
		c.FillCircle(z.Pos, z.Range, colorWind)
		c.Line(world.Segment{Start: z.Pos, End: z.Pos.Add(z.Dir.Mul(z.Range / 2))},
			3, colorWind)
	}
	c.FillCircle(w.Goal.Pos, w.Goal.Radius, colorGoal)
	for _, s := range w.Stars {
		if !s.Collected {
			c.FillCircle(s.Pos, s.Radius, colorStar)
		}
	}
	for _, r := range w.LiveRopes() {
		c.Line(r.Segment(&w.Candy), 3, colorRope)
	}
	for _, a := range w.Anchors {
		c.FillCircle(a.Pos, world.AnchorRadius, colorAnchor)
	}
	c.FillCircle(w.Candy.Pos, w.Candy.Radius, colorCandy)
	for _, b := range w.Bubbles {
		if b.Active {
			c.FillCircle(b.Pos, b.Radius, colorBubble)
		}
	}

	g.DrawEffects(c)

	if g.state == Playback || g.state == DebugCrash {
		c.FillCircle(g.virtualPointerPos, 12, colorFinger)
	}
}

func (g *Gui) DrawEffects(c Canvas) {
	for _, e := range g.visWorld.Temporary {
		t := e.Animation.Progress()
		fade := 1 - t
		switch e.Kind {
		case FallingRope:
			drop := world.Pt{Y: 300 * t * t}
			c.Line(world.Segment{Start: e.Piece.Start.Add(drop),
				End: e.Piece.End.Add(drop)}, 3, WithAlpha(colorRope, fade))
		case RetractingRope:
			end := e.Piece.Start.Add(e.Piece.End.Sub(e.Piece.Start).Mul(fade))
			c.Line(world.Segment{Start: e.Piece.Start, End: end}, 3,
				WithAlpha(colorRope, fade))
		case Sparkle:
			for i := range 6 {
				angle := float64(i) * math.Pi / 3
				dir := world.Pt{X: math.Cos(angle), Y: math.Sin(angle)}
				c.FillCircle(e.Pos.Add(dir.Mul(10+30*t)), 4,
					WithAlpha(colorStar, fade))
			}
		case Pop:
			c.StrokeCircle(e.Pos, 20+30*t, 2, WithAlpha(colorBubble, fade))
		case Flash:
			FillArea(c.Img, c.Img.Bounds().Sub(c.Img.Bounds().Min),
				WithAlpha(colorSpike, 0.4*fade))
		}
	}
}

func (g *Gui) DrawEndScreen(screen *ebiten.Image, message string) {
	FillArea(screen, screen.Bounds().Sub(screen.Bounds().Min), colorOverlay)
	DrawText(SubImage(screen, image.Rect(0, 400, GameWidth, 480)),
		g.defaultFont, message, true, true, colorText)

	buttons := []struct {
		area  image.Rectangle
		label string
		shown bool
	}{
		{endScreenRestartButton, "Retry", true},
		{endScreenNextButton, "Next", g.state == GameWonScreen &&
			g.levelId < g.catalogue.Count()},
		{endScreenHomeButton, "Levels", true},
	}
	for _, b := range buttons {
		if !b.shown {
			continue
		}
		FillArea(screen, b.area, colorButton)
		DrawText(SubImage(screen, b.area), g.smallFont, b.label, true, true,
			colorText)
	}
}

func (g *Gui) DrawDebugControlsHorizontal(screen *ebiten.Image) {
	// Background of playback bar.
	screen.Fill(color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	if g.playthrough == nil || len(g.playthrough.History) == 0 {
		return
	}

	// Play/pause button.
	local := func(r image.Rectangle) image.Rectangle {
		return r.Sub(g.debugArea.Min)
	}
	playButton := local(g.buttonPlaybackPlay())
	label := "||"
	if g.playbackPaused {
		label = ">"
	}
	FillArea(screen, playButton, colorButton)
	DrawText(SubImage(screen, playButton), g.smallFont, label, true, true,
		colorText)

	// Play bar.
	bar := local(g.buttonPlaybackBar())
	midY := (bar.Min.Y + bar.Max.Y) / 2
	FillArea(screen, image.Rect(bar.Min.X, midY-2, bar.Max.X, midY+2), colorHud)

	// Playback bar cursor.
	factor := float64(g.frameIdx) / float64(len(g.playthrough.History))
	cursorX := bar.Min.X + int(factor*float64(bar.Dx()))
	FillArea(screen, image.Rect(cursorX-4, bar.Min.Y+4, cursorX+4,
		bar.Max.Y-4), colorCandy)
}
