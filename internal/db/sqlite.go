package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/random"
	"github.com/jmoiron/sqlx"

	_ "embed"

	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed init.sql
var initialiseSchemaScript string

// Database holds two connection pools, one for read/write operations and one
// for read-only operations.
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
}

// NewDatabase establishes the two database connections. Splitting reads from
// writes is a best practice mentioned in
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
//
// The url parameter is the path to the SQLite database file or ":memory:" for
// an in-memory database.
func NewDatabase(url string) (*Database, error) {
	var (
		err       error
		readWrite *sqlx.DB
		readOnly  *sqlx.DB
	)

	// For in-memory databases, we need shared cache mode so that both connections access the same data.
	//
	// For parallel tests, we need a different database name for each test to avoid sharing data.
	// See https://www.sqlite.org/inmemorydb.html.
	isInMemory := strings.Contains(url, ":memory:")
	inMemoryConfig := ""
	if isInMemory {
		var randomID string
		if randomID, err = random.Letters(20); err != nil {
			return nil, errors.Wrap(err, "generate random ID")
		}
		url = fmt.Sprintf("file:%s", randomID)
		inMemoryConfig = "mode=memory&cache=shared"
	}
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"

	// The options prefixed with underscore '_' are SQLite pragmas documented at https://www.sqlite.org/pragma.html.
	// The options without leading underscore are SQLite URI parameters documented at https://www.sqlite.org/uri.html.
	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s&%s", url, commonConfig, inMemoryConfig)
	readWriteConfig := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s&%s", url, commonConfig, inMemoryConfig)

	if readWrite, err = sqlx.Open("sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}

	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)

	// Initialize the database schema
	if _, err = readWrite.Exec(initialiseSchemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	if readOnly, err = sqlx.Open("sqlite3", readConfig); err != nil {
		return nil, errors.Wrap(err, "open read database")
	}

	maxReadConns := 10
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
	}, nil
}

// Close closes both connection pools.
func (d *Database) Close() error {
	return errors.Join(d.ReadWrite.Close(), d.ReadOnly.Close())
}
