// Package journal keeps the history of what the synchronizer did in sqlite.
// It has nothing to do with the path cache, which is never persisted.
package journal

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/db/migration"
)

var migrations = []migration.Migration{
	{
		Id: "create_events_table",
		Query: `
			CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				time DATETIME,
				action VARCHAR(32),
				remote_path TEXT,
				file_id VARCHAR(255) DEFAULT "",
				local_path TEXT DEFAULT "",
				hash VARCHAR(255) DEFAULT ""
			)
		`,
	},
	{
		Id:    "index_events_remote_path",
		Query: `CREATE INDEX IF NOT EXISTS events_remote_path ON events(remote_path)`,
	},
}

type Journal struct {
	db  *sql.DB
	log contracts.Logger
}

var _ contracts.Reporter = Journal{}

// New migrates db and returns the journal stored in it.
func New(db *sql.DB, log contracts.Logger) (Journal, error) {
	if err := migration.RunMigrations("journal", migrations, db, log); err != nil {
		return Journal{}, errors.Wrap(err, "could not migrate journal")
	}
	return Journal{db: db, log: log}, nil
}

func (j Journal) Report(e contracts.Event) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	query := `
	INSERT INTO
	events(
		'time',
		'action',
		'remote_path',
		'file_id',
		'local_path',
		'hash'
	)
	VALUES (?,?,?,?,?,?)
	`
	insertStmt, err := j.db.Prepare(query)
	if err != nil {
		return errors.Wrap(err, "could not prepare event insert")
	}
	defer insertStmt.Close()
	_, err = insertStmt.Exec(
		e.Time.UTC().Format(time.RFC3339Nano),
		string(e.Action),
		e.RemotePath,
		e.FileID,
		e.LocalPath,
		e.Hash,
	)
	if err != nil {
		return errors.Wrapf(err, "could not save event for %s", e.RemotePath)
	}
	return nil
}

// Last returns at most limit latest events, newest first.
func (j Journal) Last(limit int) ([]contracts.Event, error) {
	rows, err := j.db.Query(
		`SELECT time, action, remote_path, file_id, local_path, hash
			FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not query events")
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ByRemotePath returns all events for remotePath, oldest first.
func (j Journal) ByRemotePath(remotePath string) ([]contracts.Event, error) {
	rows, err := j.db.Query(
		`SELECT time, action, remote_path, file_id, local_path, hash
			FROM events WHERE remote_path = ? ORDER BY id`,
		remotePath,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "could not query events for %s", remotePath)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]contracts.Event, error) {
	var events []contracts.Event
	for rows.Next() {
		var (
			e      contracts.Event
			t      string
			action string
		)
		if err := rows.Scan(&t, &action, &e.RemotePath, &e.FileID, &e.LocalPath, &e.Hash); err != nil {
			return nil, errors.Wrap(err, "could not scan event")
		}
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse event time %s", t)
		}
		e.Time = parsed
		e.Action = contracts.Action(action)
		events = append(events, e)
	}
	return events, errors.Wrap(rows.Err(), "could not read events")
}
