package main

import (
	"embed"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"github.com/marisvali/cutrope/levels"
	"github.com/marisvali/cutrope/progress"
	"github.com/marisvali/cutrope/world"
)

// ReleaseVersion is the version of an executable built and given to someone
// to play, either as a desktop executable or a .wasm in the browser. It is a
// unique label for the functionality that a player is presented with.
// ReleaseVersion must change when world.SimulationVersion or
// world.InputVersion change. It also changes for reasons that leave the
// simulation alone:
// - uploading playthroughs is enabled or disabled
// - asserts are enabled or disabled
// - the graphics change
// Each variation gets its own executable instead of a configuration switch,
// so that every recorded playthrough says exactly what the player saw.
const ReleaseVersion = 2

//go:embed data/*
var embeddedFiles embed.FS

type GameState int64

const (
	LevelSelect GameState = iota
	PlayScreen
	GameOverScreen
	GameWonScreen
	Playback
	DebugCrash
)

type Gui struct {
	Config
	FSys      FS
	logger    *log.Logger
	params    world.Params
	catalogue *levels.Catalogue

	// session is the level being played. world is the snapshot that Draw
	// shows: the session's during play, the replayed one during playback.
	session *world.Session
	world   world.World
	levelId int64

	progress progress.Progress
	store    progress.Store
	tracker  *progress.Tracker

	playthrough       *world.Playthrough
	frameIdx          int64
	state             GameState
	playbackPaused    bool
	virtualPointerPos world.Pt
	pointer           PointerState
	pressedKeys       []ebiten.Key
	justPressedKeys   []ebiten.Key // keys pressed in this frame
	FrameSkipArrow    int64
	FrameSkipShift    int64
	enableDebugAreas  bool
	gameArea          image.Rectangle
	debugArea         image.Rectangle
	levelButtons      []LevelButton
	username          string
	uploadChannel     chan *world.Playthrough
	visWorld          VisWorld
	sounds            *Sounds
	defaultFont       font.Face
	smallFont         font.Face
	folderWatcher     FolderWatcher
	devModeEnabled    bool
}

type Config struct {
	StartState    string `yaml:"StartState"`
	StartLevel    int64  `yaml:"StartLevel"`
	PlaybackFile  string `yaml:"PlaybackFile"`
	RecordToFile  bool   `yaml:"RecordToFile"`
	RecordingFile string `yaml:"RecordingFile"`
	ParamsFile    string `yaml:"ParamsFile"`
	LevelsFile    string `yaml:"LevelsFile"`
	ProgressStore string `yaml:"ProgressStore"`
	ProgressDir   string `yaml:"ProgressDir"`
	LogLevel      string `yaml:"LogLevel"`
}

// PointerState is the mouse, seen as a single finger.
type PointerState struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	Pos          world.Pt
}

func main() {
	ebiten.SetWindowPosition(1000, 100)

	var g Gui
	g.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cutrope",
	})
	g.username = getUsername()
	// A channel size of 10 means the channel will buffer 10 playthroughs
	// before it is full and it blocks. Hopefully, when uploading data, a size
	// of 10 is sufficient.
	g.uploadChannel = make(chan *world.Playthrough, 10)
	go UploadPlaythroughs(g.username, g.uploadChannel, g.logger)
	g.FrameSkipArrow = 1
	g.FrameSkipShift = 10

	if !FileExists(os.DirFS(".").(FS), "data") {
		g.FSys = &embeddedFiles
	} else {
		g.FSys = os.DirFS(".").(FS)
		g.folderWatcher.Folder = "data"
		// Initialize the watcher with the current timestamps of the files, so
		// that the first check doesn't reload everything right away.
		g.folderWatcher.FolderContentsChanged()
	}

	filePassedForPlayback := false
	if len(os.Args) == 2 {
		if os.Args[1] == "developer-mode-enabled" {
			g.devModeEnabled = true
		} else {
			filePassedForPlayback = true
		}
	}

	g.LoadGuiData()

	if filePassedForPlayback {
		g.StartState = "Playback"
		g.PlaybackFile = os.Args[1]
	}

	g.store = g.OpenProgressStore()
	g.LoadProgress()
	g.sounds = NewSounds()

	switch g.StartState {
	case "Playback":
		g.state = Playback
		g.enableDebugAreas = true
		g.LoadPlaythrough(g.PlaybackFile)
	case "DebugCrash":
		g.state = DebugCrash
		g.enableDebugAreas = true
		// Don't crash when we are debugging the crash. The last input is the
		// one that crashed. Replay everything before it, so the state of the
		// world can be inspected visually and in the debugger, then trigger
		// the bug by stepping once more.
		CheckCrashes = false
		g.LoadPlaythrough(g.PlaybackFile)
		g.frameIdx = int64(len(g.playthrough.History)) - 1
		g.ReplayTo(g.frameIdx)
	case "Play":
		g.PlayLevel(max(g.StartLevel, progress.FirstLevel))
	case "LevelSelect", "":
		g.state = LevelSelect
	default:
		panic(fmt.Errorf("invalid g.StartState: %s", g.StartState))
	}

	err := ebiten.RunGame(&g)
	Check(err)
}

// PlayLevel starts a fresh session of a level.
func (g *Gui) PlayLevel(id int64) {
	level, err := g.catalogue.Get(id)
	Check(err)
	g.session, err = world.NewSession(level, g.params, ReleaseVersion, g.logger)
	Check(err)
	g.levelId = id
	g.tracker = progress.NewTracker(id, g.catalogue.Count())
	g.visWorld = NewVisWorld()
	g.world = g.session.Snapshot()
	g.frameIdx = 0
	g.state = PlayScreen
}

// LoadPlaythrough prepares the playthrough in the file for playback.
func (g *Gui) LoadPlaythrough(name string) {
	p, err := world.DeserializePlaythrough(ReadFile(name))
	Check(err)
	g.playthrough = &p
	g.levelId = p.Level.Id
	g.ReplayTo(0)
	g.logger.Info("loaded playthrough", "file", name, "id", p.Id,
		"frames", len(p.History), "level", p.Level.Id)
}

// ReplayTo rebuilds the world as it was after the first n inputs of the
// playthrough.
func (g *Gui) ReplayTo(n int64) {
	Assert(n >= 0 && n <= int64(len(g.playthrough.History)),
		"replay to frame %d of %d", n, len(g.playthrough.History))
	w, err := world.Replay(g.playthrough, int(n))
	Check(err)
	g.world = *w
	g.frameIdx = n
	g.visWorld = NewVisWorld()
}
