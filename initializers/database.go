package initializers

import (
	"database/sql"
	_ "embed"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

var DB *goqu.Database

// ConnectDB opens the local snapshot database. A postgres:// DSN selects the
// server driver; anything else is treated as an embedded sqlite file path
// (":memory:" included), which is the default for single-device deployments.
func ConnectDB() {
	dsn := Cfg.DB_URL

	var db *sql.DB
	var err error
	var dialect string

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect = "postgres"
		db, err = sql.Open("postgres", dsn)
	} else {
		dialect = "sqlite3"
		if dsn != ":memory:" {
			if mkErr := os.MkdirAll(filepath.Dir(dsn), 0755); mkErr != nil {
				log.Fatal("Failed to create database directory: ", mkErr)
			}
		}

		// modernc.org/sqlite takes pragmas as _pragma DSN parameters so they
		// apply to every pooled connection.
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + strings.Join([]string{
			"_pragma=journal_mode(WAL)",
			"_pragma=busy_timeout(30000)",
			"_pragma=foreign_keys(1)",
			"_pragma=synchronous(NORMAL)",
		}, "&")

		db, err = sql.Open("sqlite", dsn)
	}

	if err != nil {
		log.Fatal(err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal(err)
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		log.Fatal("Failed to initialize schema: ", err)
	}

	DB = goqu.New(dialect, db)
}
