package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marisvali/cutrope/world"
)

func TestNew(t *testing.T) {
	p := New()
	assert.True(t, p.Unlocked(1))
	assert.False(t, p.Unlocked(2))
	assert.Equal(t, DefaultSettings(), p.Settings)
	assert.Equal(t, int64(0), p.TotalStars())

	// The first level is unlocked even for an empty progress.
	var empty Progress
	assert.True(t, empty.Unlocked(FirstLevel))
	assert.Equal(t, []int64{1}, empty.UnlockedLevels())
}

func TestComplete(t *testing.T) {
	p := New()
	p.Complete(1, 2)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 2}, p.Levels[1])
	assert.True(t, p.Unlocked(2))
	assert.False(t, p.Unlocked(3))

	// Fewer stars don't overwrite the best result.
	p.Complete(1, 1)
	assert.Equal(t, int64(2), p.Levels[1].Stars)
	p.Complete(1, 3)
	assert.Equal(t, int64(3), p.Levels[1].Stars)

	// Completing a level doesn't touch the next level if it's already there.
	p.Complete(2, 1)
	p.Complete(1, 3)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 1}, p.Levels[2])
	assert.Equal(t, int64(4), p.TotalStars())
	assert.Equal(t, []int64{1, 2, 3}, p.UnlockedLevels())

	p.Reset()
	assert.Equal(t, []int64{1}, p.UnlockedLevels())
	assert.Equal(t, int64(0), p.TotalStars())
}

func TestRecord(t *testing.T) {
	p := New()
	p.Record(1, 2)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 2}, p.Levels[1])
	assert.False(t, p.Unlocked(2))
	assert.Equal(t, []int64{1}, p.UnlockedLevels())

	p.Unlock(3)
	p.Unlock(3)
	assert.Equal(t, []int64{1, 3}, p.UnlockedLevels())
	p.Record(3, 1)
	p.Unlock(3)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 1}, p.Levels[3])
}

func TestTracker_LastLevelUnlocksNothing(t *testing.T) {
	p := New()
	for id := int64(1); id <= 3; id++ {
		tr := NewTracker(id, 3)
		assert.True(t, tr.Handle(&p, []world.Event{
			world.StarCollected{Star: "s1"},
			world.GameWon{Frame: 10},
		}))
		// Restarting keeps knowing where the catalogue ends.
		tr.Reset()
		assert.Equal(t, int64(3), tr.LastLevel)
	}
	assert.Equal(t, []int64{1, 2, 3}, p.UnlockedLevels())
	assert.False(t, p.Unlocked(4))
	assert.Equal(t, int64(3), p.TotalStars())
}

func TestClone(t *testing.T) {
	p := New()
	c := p.Clone()
	c.Complete(1, 3)
	assert.False(t, p.Unlocked(2))
}

func TestTracker(t *testing.T) {
	p := New()
	tr := NewTracker(1, 10)

	assert.False(t, tr.Handle(&p, []world.Event{
		world.FrameUpdate{Frame: 1},
		world.StarCollected{Star: "s1"},
	}))
	assert.False(t, tr.Handle(&p, []world.Event{
		world.StarCollected{Star: "s2"},
	}))
	assert.True(t, tr.Handle(&p, []world.Event{
		world.FrameUpdate{Frame: 2},
		world.GameWon{Frame: 2},
		// Nothing counts after the end.
		world.StarCollected{Star: "s3"},
	}))
	assert.Equal(t, Won, tr.Outcome)
	assert.Equal(t, int64(2), tr.Stars)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 2}, p.Levels[1])
	assert.True(t, p.Unlocked(2))

	// A second win in the same session is ignored.
	assert.False(t, tr.Handle(&p, []world.Event{world.GameWon{Frame: 3}}))

	// Losing changes nothing.
	tr.Reset()
	assert.Equal(t, Undecided, tr.Outcome)
	tr.Handle(&p, []world.Event{
		world.StarCollected{Star: "s1"},
		world.StarCollected{Star: "s2"},
		world.StarCollected{Star: "s3"},
		world.SpikeHit{Spike: "spike1", Frame: 9},
	})
	assert.Equal(t, Lost, tr.Outcome)
	assert.Equal(t, int64(2), p.Levels[1].Stars)
	assert.Equal(t, "lost", tr.Outcome.String())
}

func TestTracker_WithWorld(t *testing.T) {
	l := world.Level{
		Id:         4,
		Width:      400,
		Height:     800,
		CandyStart: world.LevelPt{X: 200, Y: 200},
		Goal:       world.LevelPt{X: 200, Y: 500},
		Stars:      []world.StarDef{{X: 200, Y: 300}},
	}
	w, err := world.NewWorld(l, world.DefaultParams())
	require.NoError(t, err)

	p := New()
	tr := NewTracker(l.Id, 10)
	for w.State == world.Playing {
		tr.Handle(&p, w.Step(world.PlayerInput{}))
	}
	assert.Equal(t, Won, tr.Outcome)
	assert.Equal(t, LevelProgress{Completed: true, Stars: 1}, p.Levels[4])
	assert.True(t, p.Unlocked(5))
}

func TestYAMLStore(t *testing.T) {
	ctx := context.Background()
	s := NewYAMLStore(t.TempDir(), nil)

	// Never saved.
	p, err := s.Load(ctx, "vali")
	require.NoError(t, err)
	assert.Equal(t, New(), p)

	p.Complete(1, 3)
	p.Complete(2, 1)
	p.Settings.Music = false
	require.NoError(t, s.Save(ctx, "vali", p))

	loaded, err := s.Load(ctx, "vali")
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	// Users don't see each other's progress.
	other, err := s.Load(ctx, "someone-else")
	require.NoError(t, err)
	assert.Equal(t, New(), other)

	// User names can't escape the directory.
	_, err = s.Load(ctx, "../vali")
	assert.Error(t, err)
	assert.Error(t, s.Save(ctx, "", p))
}

func TestYAMLStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewYAMLStore(dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vali.yaml"),
		[]byte("Levels: [[[\n"), 0644))

	p, err := s.Load(ctx, "vali")
	require.NoError(t, err)
	assert.Equal(t, New(), p)
}

func TestDecode(t *testing.T) {
	// Missing settings keep their defaults and level 1 is always there.
	p, err := Decode([]byte("Levels:\n  3: {Completed: true, Stars: 2}\n" +
		"Settings:\n  Sound: false\n"))
	require.NoError(t, err)
	assert.Equal(t, Settings{Sound: false, Music: true, Haptics: true},
		p.Settings)
	assert.True(t, p.Unlocked(1))
	assert.Equal(t, int64(2), p.Levels[3].Stars)
	assert.False(t, p.Unlocked(2))
}

func TestMySQLStore(t *testing.T) {
	cfg, err := MySQLConfigFromEnv()
	if err != nil {
		t.Skip("no database configured:", err)
	}
	ctx := context.Background()
	s, err := OpenMySQL(ctx, cfg, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	user := "cutrope-test"
	p := New()
	p.Complete(1, 2)
	p.Settings.Haptics = false
	require.NoError(t, s.Save(ctx, user, p))

	loaded, err := s.Load(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestMySQLConfigFromEnv(t *testing.T) {
	t.Setenv(EnvDbAddr, "")
	t.Setenv(EnvDbName, "")
	_, err := MySQLConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrNoDatabase)

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte(
		"CUTROPE_DBUSER=u\nCUTROPE_DBADDR=localhost:3306\n"), 0644))
	t.Setenv(EnvDbName, "cutrope")
	t.Setenv(EnvDbUser, "from-env")
	require.NoError(t, os.Unsetenv(EnvDbAddr))
	cfg, err := MySQLConfigFromEnv(env)
	require.NoError(t, err)
	assert.Equal(t, "localhost:3306", cfg.Addr)
	assert.Equal(t, "cutrope", cfg.DBName)
	// The environment wins over the file.
	assert.Equal(t, "from-env", cfg.User)
}
