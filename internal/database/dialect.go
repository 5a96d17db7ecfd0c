package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// RewriteInsertIgnore turns a plain INSERT into the dialect's
	// insert-or-ignore-on-conflict form. Queries must start with "INSERT INTO"
	// and target a table with a uniqueness constraint on the conflict columns.
	RewriteInsertIgnore(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// insertPrefix reports whether the query starts with INSERT INTO, ignoring
// leading whitespace and case
func hasInsertPrefix(query string) bool {
	trimmed := strings.TrimSpace(query)
	return len(trimmed) >= len("INSERT INTO") &&
		strings.EqualFold(trimmed[:len("INSERT INTO")], "INSERT INTO")
}

// replaceInsertKeyword swaps the leading INSERT keyword for a replacement
// (e.g. "INSERT OR IGNORE"), preserving the rest of the query
func replaceInsertKeyword(query, replacement string) string {
	trimmed := strings.TrimSpace(query)
	return replacement + trimmed[len("INSERT"):]
}

// appendConflictClause appends a conflict clause before any trailing semicolon
func appendConflictClause(query, clause string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(query), ";")
	return trimmed + " " + clause
}
