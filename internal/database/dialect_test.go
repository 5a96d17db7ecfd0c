package database

import "testing"

func TestPostgresRewriteQuery(t *testing.T) {
	d := NewPostgresDialect()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM users WHERE id = ?",
			want:  "SELECT * FROM users WHERE id = $1",
		},
		{
			name:  "multiple placeholders numbered in order",
			query: "INSERT INTO favorites (profile_id, book_id) VALUES (?, ?)",
			want:  "INSERT INTO favorites (profile_id, book_id) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.RewriteQuery(tt.query); got != tt.want {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteRewriteQueryIsIdentity(t *testing.T) {
	d := NewSQLiteDialect()
	query := "SELECT * FROM users WHERE id = ?"
	if got := d.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery() = %q, want unchanged", got)
	}
}

func TestRewriteInsertIgnore(t *testing.T) {
	insert := "INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?);"

	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{
			name:    "sqlite uses INSERT OR IGNORE",
			dialect: NewSQLiteDialect(),
			want:    "INSERT OR IGNORE INTO reading_events (profile_id, activity_date) VALUES (?, ?);",
		},
		{
			name:    "mysql uses INSERT IGNORE",
			dialect: NewMySQLDialect(),
			want:    "INSERT IGNORE INTO reading_events (profile_id, activity_date) VALUES (?, ?);",
		},
		{
			name:    "postgres appends ON CONFLICT DO NOTHING",
			dialect: NewPostgresDialect(),
			want:    "INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?) ON CONFLICT DO NOTHING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteInsertIgnore(insert); got != tt.want {
				t.Errorf("RewriteInsertIgnore() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteInsertIgnoreLeavesNonInsertsAlone(t *testing.T) {
	query := "UPDATE users SET role = ? WHERE id = ?"
	for _, d := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		if got := d.RewriteInsertIgnore(query); got != query {
			t.Errorf("%s: RewriteInsertIgnore changed a non-insert: %q", d.DriverName(), got)
		}
	}
}

func TestMySQLDSNAddsConnectionParams(t *testing.T) {
	d := NewMySQLDialect()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "bare dsn",
			url:  "user:pass@tcp(localhost:3306)/readquest",
			want: "user:pass@tcp(localhost:3306)/readquest?parseTime=true&multiStatements=true",
		},
		{
			name: "existing params",
			url:  "user:pass@tcp(localhost:3306)/readquest?charset=utf8mb4",
			want: "user:pass@tcp(localhost:3306)/readquest?charset=utf8mb4&parseTime=true&multiStatements=true",
		},
		{
			name: "already configured",
			url:  "user:pass@tcp(localhost:3306)/readquest?parseTime=true&multiStatements=true",
			want: "user:pass@tcp(localhost:3306)/readquest?parseTime=true&multiStatements=true",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DSN(DialectConfig{URL: tt.url}); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
