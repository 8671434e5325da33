package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS lessons (
    day INTEGER PRIMARY KEY,
    topic TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending'
);

CREATE INDEX IF NOT EXISTS idx_lessons_status_day ON lessons(status, day);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
