package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Open opens (or creates) the sqlite database at dbPath.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open the database file %s", dbPath)
	}
	// sqlite does not like concurrent writers
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "could not connect to %s", dbPath)
	}
	return db, nil
}
