package main

import (
	"context"
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/marisvali/cutrope/world"
)

func (g *Gui) Update() error {
	defer g.HandlePanic()

	g.pressedKeys = g.pressedKeys[:0]
	g.pressedKeys = inpututil.AppendPressedKeys(g.pressedKeys)
	g.justPressedKeys = g.justPressedKeys[:0]
	g.justPressedKeys = inpututil.AppendJustPressedKeys(g.justPressedKeys)
	g.pointer = g.readPointer()

	if g.folderWatcher.FolderContentsChanged() {
		g.LoadGuiData()
		if g.state == PlayScreen {
			g.PlayLevel(g.levelId)
		}
	}

	switch g.state {
	case LevelSelect:
		g.UpdateLevelSelect()
	case PlayScreen:
		g.UpdatePlayScreen()
	case GameOverScreen, GameWonScreen:
		g.UpdateEndScreen()
	case Playback:
		g.UpdatePlayback()
	case DebugCrash:
		g.UpdateDebugCrash()
	default:
		panic("unhandled default case")
	}

	return nil
}

func (g *Gui) readPointer() (p PointerState) {
	x, y := ebiten.CursorPosition()
	p.Pos = g.ScreenToWorld(image.Pt(x, y))
	p.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return
}

// TouchFromPointer turns the state of the mouse into a sample of the touch
// stream. The mouse only counts as a finger while the button is down.
func TouchFromPointer(p PointerState) (world.TouchEvent, bool) {
	switch {
	case p.JustPressed:
		return world.TouchEvent{Phase: world.TouchStart, Pos: p.Pos}, true
	case p.JustReleased:
		return world.TouchEvent{Phase: world.TouchEnd, Pos: p.Pos}, true
	case p.Pressed:
		return world.TouchEvent{Phase: world.TouchMove, Pos: p.Pos}, true
	default:
		return world.TouchEvent{}, false
	}
}

func (g *Gui) UpdateLevelSelect() {
	if g.JustPressed(ebiten.KeyS) {
		g.progress.Settings.Sound = !g.progress.Settings.Sound
		g.SaveProgress()
	}
	for _, b := range g.levelButtons {
		if g.progress.Unlocked(b.LevelId) && g.JustClicked(b.Area) {
			g.PlayLevel(b.LevelId)
			return
		}
	}
	if g.JustPressed(ebiten.KeyEnter) {
		unlocked := g.progress.UnlockedLevels()
		last := unlocked[len(unlocked)-1]
		g.PlayLevel(min(last, g.catalogue.Count()))
	}
}

func (g *Gui) UpdatePlayScreen() {
	if g.JustPressed(ebiten.KeyEscape) {
		g.EndSession()
		g.state = LevelSelect
		return
	}
	if g.JustPressed(ebiten.KeyR) {
		g.session.Restart()
		g.tracker.Reset()
		g.visWorld = NewVisWorld()
	}

	var events []world.Event
	if t, ok := TouchFromPointer(g.pointer); ok {
		events = append(events, g.session.Touch(t)...)
	}
	events = append(events, g.session.Tick(world.FixedDt)...)

	if g.RecordToFile {
		data, err := g.session.Playthrough().Serialize()
		Check(err)
		WriteFile(g.RecordingFile, data)
	}

	g.world = g.session.Snapshot()
	g.frameIdx++
	g.HandleEvents(events)
}

// HandleEvents passes the events of a frame to everyone who reacts to them:
// the visual effects, the progress of the player and the screen flow.
func (g *Gui) HandleEvents(events []world.Event) {
	g.visWorld.Step(events)
	if g.progress.Settings.Sound {
		g.sounds.Play(events)
	}

	if g.tracker.Handle(&g.progress, events) {
		g.SaveProgress()
	}

	for _, e := range events {
		if !world.IsTerminal(e) {
			continue
		}
		Assert(g.world.State != world.Playing,
			"session still playing after %T at frame %d", e, g.world.Frame)
		if _, won := e.(world.GameWon); won {
			g.state = GameWonScreen
		} else {
			g.state = GameOverScreen
		}
		g.EndSession()
	}
}

// EndSession sends the recording of the current session away. Sessions in
// which the player did nothing are not worth keeping.
func (g *Gui) EndSession() {
	p := g.session.Playthrough()
	if !slices.ContainsFunc(p.History, func(i world.PlayerInput) bool {
		return i.EventOccurred()
	}) {
		return
	}
	select {
	case g.uploadChannel <- p:
	default:
		g.logger.Warn("upload queue full, dropping playthrough", "id", p.Id)
	}
}

func (g *Gui) UpdateEndScreen() {
	// A finished session doesn't change anymore, only the effects of its
	// last frames play out.
	g.visWorld.Step(nil)
	switch {
	case g.JustPressed(ebiten.KeyR) || g.JustClicked(endScreenRestartButton):
		g.PlayLevel(g.levelId)
	case g.JustPressed(ebiten.KeyN) || g.JustClicked(endScreenNextButton):
		next := g.levelId + 1
		if g.state == GameWonScreen && next <= g.catalogue.Count() &&
			g.progress.Unlocked(next) {
			g.PlayLevel(next)
		}
	case g.JustPressed(ebiten.KeyEscape) || g.JustClicked(endScreenHomeButton):
		g.state = LevelSelect
	}
}

func (g *Gui) Pressed(key ebiten.Key) bool {
	return slices.Contains(g.pressedKeys, key)
}

func (g *Gui) JustPressed(key ebiten.Key) bool {
	return slices.Contains(g.justPressedKeys, key)
}

// JustClicked reports whether the left button was just pressed inside
// button, an area relative to the game area.
func (g *Gui) JustClicked(button image.Rectangle) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButton0) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).Sub(g.gameArea.Min).In(button)
}

// LeftClickPressedOn reports whether the left button is down inside button,
// an area in screen coordinates.
func (g *Gui) LeftClickPressedOn(button image.Rectangle) bool {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButton0) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(button)
}

func (g *Gui) UpdatePlayback() {
	nFrames := int64(len(g.playthrough.History))
	if nFrames == 0 {
		return
	}

	userRequestedPlaybackPause := g.JustPressed(ebiten.KeySpace) ||
		g.LeftClickJustPressedOn(g.buttonPlaybackPlay())
	if userRequestedPlaybackPause {
		g.playbackPaused = !g.playbackPaused
	}

	// Choose target frame.
	targetFrameIdx := g.frameIdx

	// Compute the target frame index based on where on the play bar the user
	// clicked.
	bar := g.buttonPlaybackBar()
	if g.LeftClickPressedOn(bar) {
		x, _ := ebiten.CursorPosition()
		dx := int64(x - bar.Min.X)
		targetFrameIdx = dx * nFrames / int64(bar.Dx())
	}

	if g.Pressed(ebiten.KeyLeft) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx -= g.FrameSkipShift
	}

	if g.Pressed(ebiten.KeyRight) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipShift
	}

	if g.Pressed(ebiten.KeyLeft) && !g.Pressed(ebiten.KeyShift) {
		if g.playbackPaused {
			targetFrameIdx -= g.FrameSkipArrow
		} else {
			targetFrameIdx -= g.FrameSkipArrow * 2
		}
	}

	if g.Pressed(ebiten.KeyRight) && !g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipArrow
	}

	targetFrameIdx = max(0, min(targetFrameIdx, nFrames-1))
	if targetFrameIdx != g.frameIdx {
		g.ReplayTo(targetFrameIdx)
	}

	// Get input from recording.
	input := g.playthrough.History[g.frameIdx]
	// Remember the touch position in order to draw the virtual finger during
	// Draw().
	if input.Touch.Phase != world.TouchNone {
		g.virtualPointerPos = input.Touch.Pos
	}

	if !g.playbackPaused && g.frameIdx < nFrames-1 {
		g.visWorld.Step(g.world.Step(input))
		g.frameIdx++
	}
}

func (g *Gui) LeftClickJustPressedOn(button image.Rectangle) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButton0) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(button)
}

func (g *Gui) UpdateDebugCrash() {
	nFrames := int64(len(g.playthrough.History))
	var input world.PlayerInput
	if g.frameIdx < nFrames {
		input = g.playthrough.History[g.frameIdx]
		g.virtualPointerPos = input.Touch.Pos
	}

	// Don't do anything, wait for the player to press a key.
	goToNextFrame := g.JustPressed(ebiten.KeyD) || g.JustPressed(ebiten.KeyRight)
	if goToNextFrame && g.frameIdx < nFrames {
		g.visWorld.Step(g.world.Step(input))
		g.frameIdx++
	}

	// Going back means replaying everything from the start, there is no
	// other way to undo a step.
	goToPreviousFrame := g.JustPressed(ebiten.KeyA) || g.JustPressed(ebiten.KeyLeft)
	if goToPreviousFrame && g.frameIdx > 0 {
		g.ReplayTo(g.frameIdx - 1)
	}
}

// LoadProgress reads the progress of the current user. Failing to read it
// is not a reason to stop the game, the player just starts from scratch.
func (g *Gui) LoadProgress() {
	p, err := g.store.Load(context.Background(), g.username)
	if err != nil {
		g.logger.Warn("starting with fresh progress", "user", g.username,
			"err", err)
	}
	g.progress = p
}

func (g *Gui) SaveProgress() {
	err := g.store.Save(context.Background(), g.username, g.progress)
	if err != nil {
		g.logger.Error("can't save progress", "user", g.username, "err", err)
	}
}
