package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/marisvali/cutrope/levels"
	"github.com/marisvali/cutrope/progress"
	"github.com/marisvali/cutrope/world"
)

func (g *Gui) LoadGuiData() {
	// Read from the disk over and over until a full read is possible.
	// This repetition is meant to avoid crashes due to reading files
	// while they are still being written.
	// It's a hack but possibly a quick and very useful one.
	// This repeated reading is only useful when we're not reading from the
	// embedded filesystem. When we're reading from the embedded filesystem we
	// want to crash as soon as possible. We might be in the browser, in which
	// case we want to see an error in the developer console instead of a page
	// that keeps trying to load and reports nothing.
	previousVal := CheckCrashes
	if g.folderWatcher.Folder != "" {
		CheckCrashes = false
	}
	for {
		CheckFailed = nil
		if g.devModeEnabled {
			LoadYAML(g.FSys, "data/config-dev.yaml", &g.Config)
		} else {
			LoadYAML(g.FSys, "data/config.yaml", &g.Config)
		}

		var err error
		g.params = world.DefaultParams()
		if g.ParamsFile != "" {
			g.params, err = world.LoadParams(g.FSys, g.ParamsFile)
			Check(err)
		}

		if g.LevelsFile != "" {
			g.catalogue, err = levels.Load(g.FSys, g.LevelsFile)
			Check(err)
		} else {
			g.catalogue = levels.Builtin()
		}

		if CheckFailed == nil {
			break
		}
	}
	CheckCrashes = previousVal

	if g.LogLevel != "" {
		level, err := log.ParseLevel(g.LogLevel)
		Check(err)
		g.logger.SetLevel(level)
	}
	g.levelButtons = LevelButtons(g.catalogue.Ids())
	g.UpdateWindowSize()

	// Load the Go font, in two sizes.
	fontData, err := opentype.Parse(goregular.TTF)
	Check(err)

	g.defaultFont, err = opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    32,
		DPI:     72,
		Hinting: font.HintingVertical,
	})
	Check(err)

	g.smallFont, err = opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    20,
		DPI:     72,
		Hinting: font.HintingVertical,
	})
	Check(err)
}

func (g *Gui) UpdateWindowSize() {
	_, height := ebiten.ScreenSizeInFullscreen()
	windowHeight := height * 8 / 10
	ebiten.SetWindowSize(windowHeight*GameWidth/GameHeight, windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Cut the Rope")
}

// OpenProgressStore picks where the progress of the player lives:
// - "mysql": the database configured by the CUTROPE_DB* variables, from the
// environment or a .env file.
// - "http": the same server that receives the playthroughs.
// - anything else: YAML files in ProgressDir.
// A database that can't be reached falls back to the files.
func (g *Gui) OpenProgressStore() progress.Store {
	switch g.ProgressStore {
	case "mysql":
		cfg, err := progress.MySQLConfigFromEnv(".env")
		if err == nil {
			var s *progress.MySQLStore
			s, err = progress.OpenMySQL(context.Background(), cfg, g.logger)
			if err == nil {
				return s
			}
		}
		g.logger.Warn("can't use the database for progress", "err", err)
	case "http":
		return HttpStore{}
	}

	dir := g.ProgressDir
	if dir == "" {
		dir = "progress"
	}
	return progress.NewYAMLStore(dir, g.logger)
}
