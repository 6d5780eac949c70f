package store

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Dialect holds the SQL differences between supported databases.
type Dialect struct {
	Name   string
	Driver string
	// MaxOpenConns limits the pool; zero leaves the driver default.
	MaxOpenConns int
	schema       string
	positional   bool
}

var (
	SQLite = Dialect{
		Name:         "sqlite",
		Driver:       "sqlite",
		MaxOpenConns: 1,
		schema: `CREATE TABLE IF NOT EXISTS complaints (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	csr_no TEXT NOT NULL DEFAULT '',
	ack_no TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT '',
	sub_category TEXT NOT NULL DEFAULT '',
	platform TEXT NOT NULL DEFAULT '',
	incident_date TEXT NOT NULL DEFAULT '',
	incident_time TEXT NOT NULL DEFAULT '',
	complaint_date TEXT NOT NULL DEFAULT '',
	complaint_name_address TEXT NOT NULL DEFAULT '',
	complaint_phone TEXT NOT NULL DEFAULT '',
	complaint_mail TEXT NOT NULL DEFAULT '',
	suspect_phone TEXT NOT NULL DEFAULT '',
	suspect_social TEXT NOT NULL DEFAULT '',
	total_loss TEXT NOT NULL DEFAULT '',
	additional_info TEXT NOT NULL DEFAULT '',
	full_data_json TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	}

	Postgres = Dialect{
		Name:       "postgres",
		Driver:     "pgx",
		positional: true,
		schema: `CREATE TABLE IF NOT EXISTS complaints (
	id BIGSERIAL PRIMARY KEY,
	csr_no TEXT NOT NULL DEFAULT '',
	ack_no TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT '',
	sub_category TEXT NOT NULL DEFAULT '',
	platform TEXT NOT NULL DEFAULT '',
	incident_date TEXT NOT NULL DEFAULT '',
	incident_time TEXT NOT NULL DEFAULT '',
	complaint_date TEXT NOT NULL DEFAULT '',
	complaint_name_address TEXT NOT NULL DEFAULT '',
	complaint_phone TEXT NOT NULL DEFAULT '',
	complaint_mail TEXT NOT NULL DEFAULT '',
	suspect_phone TEXT NOT NULL DEFAULT '',
	suspect_social TEXT NOT NULL DEFAULT '',
	total_loss TEXT NOT NULL DEFAULT '',
	additional_info TEXT NOT NULL DEFAULT '',
	full_data_json TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	case Postgres.Name, "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// rebind rewrites ? placeholders as $n for positional dialects.
func (d Dialect) rebind(query string) string {
	if !d.positional {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dsn adds the busy timeout to bare SQLite paths.
func (d Dialect) dsn(dsn string) string {
	if d.Name == SQLite.Name && !strings.Contains(dsn, "?") {
		return dsn + "?_pragma=busy_timeout(5000)"
	}
	return dsn
}
