package database

import (
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE reading_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id INTEGER NOT NULL,
			activity_date VARCHAR(10) NOT NULL,
			UNIQUE (profile_id, activity_date)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db := openTestDB(t)

	id, err := db.ExecReturningID(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?);",
		1, "2026-03-10",
	)
	if err != nil {
		t.Fatalf("ExecReturningID: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero row ID")
	}
}

func TestExecInsertIgnoreAbsorbsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db := openTestDB(t)

	affected, err := db.ExecInsertIgnore(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?)",
		1, "2026-03-10",
	)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first insert affected %d rows, want 1", affected)
	}

	affected, err = db.ExecInsertIgnore(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?)",
		1, "2026-03-10",
	)
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if affected != 0 {
		t.Errorf("duplicate insert affected %d rows, want 0", affected)
	}

	// a different day still inserts
	affected, err = db.ExecInsertIgnore(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?)",
		1, "2026-03-11",
	)
	if err != nil {
		t.Fatalf("second day insert: %v", err)
	}
	if affected != 1 {
		t.Errorf("second day insert affected %d rows, want 1", affected)
	}
}

func TestTransactionRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db := openTestDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?)",
		1, "2026-03-10",
	); err != nil {
		t.Fatalf("insert in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM reading_events").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rollback to discard the insert, found %d rows", count)
	}
}
