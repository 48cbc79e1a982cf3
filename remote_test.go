//go:build !http_enabled

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marisvali/cutrope/levels"
	"github.com/marisvali/cutrope/progress"
	"github.com/marisvali/cutrope/world"
)

func TestHttpStore(t *testing.T) {
	// Without the http_enabled tag there is no server: every player starts
	// from scratch and saving goes nowhere.
	ctx := context.Background()
	var s progress.Store = HttpStore{}
	p, err := s.Load(ctx, "vali")
	require.NoError(t, err)
	assert.Equal(t, progress.New(), p)
	p.Complete(1, 3)
	assert.NoError(t, s.Save(ctx, "vali", p))
}

func TestUploadPlaythroughs(t *testing.T) {
	level, err := levels.Get(1)
	require.NoError(t, err)
	ch := make(chan *world.Playthrough, 2)
	for range 2 {
		p := world.NewPlaythrough(level, world.DefaultParams(), ReleaseVersion)
		p.History = append(p.History, world.PlayerInput{})
		ch <- &p
	}
	close(ch)

	// Returns once the channel is closed and drained.
	var out bytes.Buffer
	logger := log.NewWithOptions(&out, log.Options{Level: log.DebugLevel})
	UploadPlaythroughs("vali", ch, logger)
	assert.Equal(t, 2, strings.Count(out.String(), "playthrough uploaded"))
}
