package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"

	"github.com/marisvali/cutrope/progress"
	"github.com/marisvali/cutrope/world"
)

// UploadPlaythroughs sends every playthrough it receives to the server,
// until ch is closed. It runs on its own goroutine so the game never waits
// for the network. A failed upload is logged and forgotten.
func UploadPlaythroughs(user string, ch <-chan *world.Playthrough,
	logger *log.Logger) {
	for p := range ch {
		data, err := p.Serialize()
		if err == nil {
			err = UploadDataToDbHttp(user, p.ReleaseVersion,
				p.SimulationVersion, p.InputVersion, p.Id, data)
		}
		if err != nil {
			logger.Warn("can't upload playthrough", "id", p.Id, "err", err)
			continue
		}
		logger.Debug("playthrough uploaded", "id", p.Id,
			"frames", len(p.History))
	}
}

// HttpStore keeps the progress of players on the server, as YAML in the
// user data. It is the store used in the browser, where there is no disk.
type HttpStore struct{}

func (HttpStore) Load(_ context.Context, user string) (progress.Progress, error) {
	data, err := GetUserDataHttp(user)
	if err != nil {
		return progress.New(), err
	}
	return progress.Decode([]byte(data))
}

func (HttpStore) Save(_ context.Context, user string, p progress.Progress) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return SetUserDataHttp(user, string(data))
}
