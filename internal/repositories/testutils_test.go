package repositories_test

import (
	"testing"

	_ "embed"

	"github.com/jkantola/smalltalk/internal/db"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.Database {
	t.Helper()
	var (
		dbs *db.Database
		err error
	)

	if dbs, err = db.NewDatabase(":memory:"); err != nil {
		t.Fatal(err)
	}

	// Set database to read-only mode.
	// The mode=ro flag doesn't seem to work with :memory: and cache=shared.
	if _, err = dbs.ReadOnly.Exec("PRAGMA query_only = TRUE;"); err != nil {
		t.Fatal(err)
	}

	// Add test data
	if _, err = dbs.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
