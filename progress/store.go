package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
)

// Store keeps the progress of many players, identified by user name.
type Store interface {
	Load(ctx context.Context, user string) (Progress, error)
	Save(ctx context.Context, user string, p Progress) error
}

// YAMLStore keeps the progress of each player in its own YAML file inside
// Dir.
type YAMLStore struct {
	Dir    string
	logger *log.Logger
}

// NewYAMLStore returns a store that writes to dir. A nil logger discards
// all logging.
func NewYAMLStore(dir string, logger *log.Logger) *YAMLStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &YAMLStore{Dir: dir, logger: logger.WithPrefix("progress")}
}

func (s *YAMLStore) path(user string) (string, error) {
	if user == "" || !filepath.IsLocal(user) || filepath.Base(user) != user {
		return "", fmt.Errorf("invalid user name %q", user)
	}
	return filepath.Join(s.Dir, user+".yaml"), nil
}

// Load returns the saved progress of the user. A player who never saved
// gets New(). A file that can't be parsed is reported and replaced by
// New(), so that a corrupt file never blocks the game.
func (s *YAMLStore) Load(_ context.Context, user string) (Progress, error) {
	name, err := s.path(user)
	if err != nil {
		return New(), err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		s.logger.Warn("can't read progress", "user", user, "err", err)
		return New(), err
	}
	p, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable progress", "user", user,
			"file", name, "err", err)
		return New(), nil
	}
	return p, nil
}

func (s *YAMLStore) Save(_ context.Context, user string, p Progress) error {
	name, err := s.path(user)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(s.Dir, 0755); err != nil {
		s.logger.Warn("can't save progress", "user", user, "err", err)
		return err
	}
	// Write next to the destination and rename, so a crash never leaves a
	// half written file behind.
	tmp := name + ".tmp"
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		s.logger.Warn("can't save progress", "user", user, "err", err)
		return err
	}
	if err = os.Rename(tmp, name); err != nil {
		s.logger.Warn("can't save progress", "user", user, "err", err)
		return err
	}
	s.logger.Debug("progress saved", "user", user, "stars", p.TotalStars())
	return nil
}

// Decode parses progress saved as YAML. Settings missing from the data keep
// their default values and the first level is always present.
func Decode(data []byte) (Progress, error) {
	p := Progress{Settings: DefaultSettings()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return New(), err
	}
	if p.Levels == nil {
		p.Levels = map[int64]LevelProgress{}
	}
	if _, ok := p.Levels[FirstLevel]; !ok {
		p.Levels[FirstLevel] = LevelProgress{}
	}
	return p, nil
}
