package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"
)

var CheckCrashes = true
var CheckFailed error

func Check(e error) {
	if e != nil {
		CheckFailed = e
		if CheckCrashes {
			panic(e)
		}
	}
}

// HandlePanic saves the session being played before the program goes down,
// so the crash can be replayed in the DebugCrash state.
func (g *Gui) HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	if g.session != nil {
		p := g.session.Playthrough()
		data, err := p.Serialize()
		if err == nil {
			name := fmt.Sprintf("crash-%s.cutrope-%d-%d",
				time.Now().Format("20060102-150405"), p.SimulationVersion,
				p.InputVersion)
			WriteFile(name, data)
			g.logger.Error("crashed, playthrough saved", "file", name,
				"panic", r, "stack", string(debug.Stack()))
		}
	}
	panic(r)
}

func ReadFile(name string) []byte {
	data, err := os.ReadFile(name)
	Check(err)
	return data
}

type FolderWatcher struct {
	Folder string
	times  []time.Time
}

func (f *FolderWatcher) FolderContentsChanged() bool {
	if f.Folder == "" {
		return false
	}

	files, err := os.ReadDir(f.Folder)
	Check(err)
	if len(files) != len(f.times) {
		f.times = make([]time.Time, len(files))
	}
	changed := false
	for idx, file := range files {
		info, err := file.Info()
		Check(err)
		if f.times[idx] != info.ModTime() {
			changed = true
			f.times[idx] = info.ModTime()
		}
	}
	return changed
}
