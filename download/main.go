package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/marisvali/cutrope/progress"
	"github.com/marisvali/cutrope/world"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "download",
})

func main() {
	DownloadRecordings()
}

// DownloadRecordings writes every uploaded playthrough to
// <user>/<start moment>.cutrope-<simulation version>-<input version>, the
// name the viewer expects for playback. Playthroughs recorded with the
// current simulation are replayed once to make sure they still load, and
// their regression id is logged.
func DownloadRecordings() {
	db := ConnectToDbSql()
	defer func(db *sql.DB) { Check(db.Close()) }(db)

	rows, err := db.Query("SELECT " +
		"start_moment, " +
		"user, " +
		"release_version, " +
		"simulation_version, " +
		"input_version, " +
		"id, " +
		"playthrough " +
		"FROM playthroughs")
	Check(err)
	defer func(rows *sql.Rows) { Check(rows.Close()) }(rows)

	var dbRows []dbRow
	for rows.Next() {
		row := dbRow{}
		err = rows.Scan(&row.startMoment, &row.user, &row.releaseVersion,
			&row.simulationVersion, &row.inputVersion, &row.id, &row.data)
		Check(err)
		dbRows = append(dbRows, row)
	}
	Check(rows.Err())

	for _, row := range dbRows {
		name := row.FileName()
		Check(os.MkdirAll(filepath.Dir(name), 0755))
		WriteFile(name, row.data)
		logger.Info("downloaded", "file", name, "release", row.releaseVersion)
		if row.simulationVersion == world.SimulationVersion &&
			row.inputVersion == world.InputVersion {
			Verify(name, row.data)
		}
	}
	logger.Info("done", "playthroughs", len(dbRows))
}

func Verify(name string, data []byte) {
	p, err := world.DeserializePlaythrough(data)
	if err != nil {
		logger.Warn("unreadable playthrough", "file", name, "err", err)
		return
	}
	id, err := world.RegressionId(&p)
	if err != nil {
		logger.Warn("playthrough doesn't replay", "file", name, "err", err)
		return
	}
	logger.Debug("replayed", "file", name, "level", p.Level.Id,
		"frames", len(p.History), "regression", id)
}

// ConnectToDbSql reads the credentials from the environment or from a .env
// file in the working directory.
func ConnectToDbSql() *sql.DB {
	cfg, err := progress.MySQLConfigFromEnv(".env")
	Check(err)
	connector, err := mysql.NewConnector(cfg)
	Check(err)
	db := sql.OpenDB(connector)
	Check(db.Ping())
	return db
}

func Check(e error) {
	if e != nil {
		panic(e)
	}
}

type dbRow struct {
	startMoment       time.Time
	user              string
	releaseVersion    int64
	simulationVersion int64
	inputVersion      int64
	id                uuid.UUID
	data              []byte
}

func (r dbRow) FileName() string {
	m := r.startMoment
	return fmt.Sprintf("%s/%d%02d%02d-%02d%02d%02d.cutrope-%d-%d", r.user,
		m.Year(), m.Month(), m.Day(), m.Hour(), m.Minute(), m.Second(),
		r.simulationVersion, r.inputVersion)
}

func WriteFile(name string, data []byte) {
	err := os.WriteFile(name, data, 0644)
	Check(err)
}
