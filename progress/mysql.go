package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Environment variables that configure the database connection.
const (
	EnvDbUser     = "CUTROPE_DBUSER"
	EnvDbPassword = "CUTROPE_DBPASSWORD"
	EnvDbAddr     = "CUTROPE_DBADDR"
	EnvDbName     = "CUTROPE_DBNAME"
)

var ErrNoDatabase = errors.New("database not configured")

// MySQLConfigFromEnv builds the connection settings from the environment.
// Variables already set win over the ones in the .env files, which are
// optional.
func MySQLConfigFromEnv(envFiles ...string) (*mysql.Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := mysql.NewConfig()
	cfg.User = os.Getenv(EnvDbUser)
	cfg.Passwd = os.Getenv(EnvDbPassword)
	cfg.Net = "tcp"
	cfg.Addr = os.Getenv(EnvDbAddr)
	cfg.DBName = os.Getenv(EnvDbName)
	cfg.AllowNativePasswords = true
	cfg.ParseTime = true
	if cfg.Addr == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("%w: %s and %s must be set", ErrNoDatabase,
			EnvDbAddr, EnvDbName)
	}
	return cfg, nil
}

// MySQLStore keeps progress in two tables:
//
//	progress(user, level_id, completed, stars), one row per unlocked level
//	settings(user, sound, music, haptics), one row per user
type MySQLStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenMySQL connects to the database and makes sure the tables exist.
func OpenMySQL(ctx context.Context, cfg *mysql.Config,
	logger *log.Logger) (*MySQLStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &MySQLStore{db: db, logger: logger.WithPrefix("progress")}
	if err = s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	for _, q := range []string{
		"CREATE TABLE IF NOT EXISTS progress (" +
			"user VARCHAR(255) NOT NULL, " +
			"level_id BIGINT NOT NULL, " +
			"completed BOOLEAN NOT NULL, " +
			"stars BIGINT NOT NULL, " +
			"PRIMARY KEY (user, level_id))",
		"CREATE TABLE IF NOT EXISTS settings (" +
			"user VARCHAR(255) NOT NULL PRIMARY KEY, " +
			"sound BOOLEAN NOT NULL, " +
			"music BOOLEAN NOT NULL, " +
			"haptics BOOLEAN NOT NULL)",
	} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLStore) Load(ctx context.Context, user string) (Progress, error) {
	p := New()
	rows, err := s.db.QueryContext(ctx, "SELECT level_id, completed, stars "+
		"FROM progress WHERE user = ?", user)
	if err != nil {
		s.logger.Warn("can't load progress", "user", user, "err", err)
		return p, err
	}
	defer func(rows *sql.Rows) { _ = rows.Close() }(rows)
	for rows.Next() {
		var id int64
		var l LevelProgress
		if err = rows.Scan(&id, &l.Completed, &l.Stars); err != nil {
			return New(), err
		}
		p.Levels[id] = l
	}
	if err = rows.Err(); err != nil {
		return New(), err
	}

	err = s.db.QueryRowContext(ctx, "SELECT sound, music, haptics "+
		"FROM settings WHERE user = ?", user).Scan(&p.Settings.Sound,
		&p.Settings.Music, &p.Settings.Haptics)
	if errors.Is(err, sql.ErrNoRows) {
		p.Settings = DefaultSettings()
		err = nil
	}
	if err != nil {
		s.logger.Warn("can't load settings", "user", user, "err", err)
		return New(), err
	}
	return p, nil
}

// Save replaces everything stored for the user, in one transaction.
func (s *MySQLStore) Save(ctx context.Context, user string, p Progress) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			s.logger.Warn("can't save progress", "user", user, "err", err)
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM progress WHERE user = ?",
		user); err != nil {
		return err
	}
	for _, id := range p.UnlockedLevels() {
		l := p.Levels[id]
		if _, err = tx.ExecContext(ctx, "INSERT INTO progress "+
			"(user, level_id, completed, stars) VALUES (?, ?, ?, ?)",
			user, id, l.Completed, l.Stars); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, "REPLACE INTO settings "+
		"(user, sound, music, haptics) VALUES (?, ?, ?, ?)", user,
		p.Settings.Sound, p.Settings.Music, p.Settings.Haptics); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
