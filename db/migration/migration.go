package migration

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
)

type Migration struct {
	Id    string
	Query string
}

// RunMigrations applies the migrations that have not been applied yet, in
// order. Applied ids are remembered in the migrations table with the given
// prefix so that different packages can keep their own lists.
func RunMigrations(prefix string, migrations []Migration, db *sql.DB, logger contracts.Logger) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(err, "could not create migrations table")
	}

	for _, m := range migrations {
		id := prefix + "_" + m.Id
		var applied int
		if err = db.QueryRow(`SELECT count(*) FROM migrations WHERE id = ?`, id).Scan(&applied); err != nil {
			return errors.Wrapf(err, "could not check migration %s", id)
		}
		if applied > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrap(err, "could not start transaction")
		}
		if _, err = tx.Exec(m.Query); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "could not apply migration %s", id)
		}
		if _, err = tx.Exec(`INSERT INTO migrations(id) VALUES (?)`, id); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "could not save migration %s", id)
		}
		if err = tx.Commit(); err != nil {
			return errors.Wrapf(err, "could not commit migration %s", id)
		}
		logger.Debug("applied migration", id)
	}
	logger.Info("Migrated successfully", prefix)

	return nil
}
