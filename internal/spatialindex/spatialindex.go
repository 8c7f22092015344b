// Package spatialindex reads the per-repository object envelope index.
//
// The index is a single sqlite file written by the external indexing
// pipeline and opened strictly read-only here. Envelope rows are decoded by
// the envelope package; their precision is not recorded in the schema and is
// re-derived from row length at read time.
package spatialindex

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // register sqlite to database/sql
)

// Schema is the index table layout. The external index builder and the test
// fixtures both create it from this definition.
const Schema = `CREATE TABLE IF NOT EXISTS blobs (blob_id BLOB PRIMARY KEY, envelope BLOB NOT NULL);`

// ErrUnavailable means the repository has no spatial index. This is an
// expected state, not a failure; callers degrade to pass-through filtering.
var ErrUnavailable = errors.New("spatial index unavailable")

// Index is a read-only handle over one repository's envelope index. Lookup
// reuses a single prepared statement for the life of the handle; it is on
// the per-object hot path of a filtered clone.
type Index struct {
	path   string
	db     *sql.DB
	lookup *sql.Stmt
}

func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no index at %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("stat index %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&immutable=1", path))
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}

	stmt, err := db.Prepare(`SELECT envelope FROM blobs WHERE blob_id = ?`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare envelope lookup: %w", err)
	}

	return &Index{path: path, db: db, lookup: stmt}, nil
}

func (ix *Index) Path() string { return ix.path }

// Lookup returns the encoded envelope for objectID. A missing row is the
// "not yet indexed" state and is reported via ok=false, not an error.
func (ix *Index) Lookup(objectID []byte) (env []byte, ok bool, err error) {
	err = ix.lookup.QueryRow(objectID).Scan(&env)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup envelope: %w", err)
	}
	return env, true, nil
}

// Close releases the prepared statement and the database handle. Safe to
// call exactly once on every session exit path.
func (ix *Index) Close() error {
	return errors.Join(ix.lookup.Close(), ix.db.Close())
}
