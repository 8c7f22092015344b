package spatialindex

import (
	"bytes"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func buildIndex(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for id, env := range entries {
		if _, err := db.Exec(`INSERT INTO blobs (blob_id, envelope) VALUES (?, ?)`, []byte(id), env); err != nil {
			t.Fatalf("insert %x: %v", id, err)
		}
	}
}

func TestOpen_MissingFileIsUnavailable(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	env := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a}
	buildIndex(t, path, map[string][]byte{
		"aaaaaaaaaaaaaaaaaaaa": env,
	})

	ix, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = ix.Close() }()

	got, ok, err := ix.Lookup([]byte("aaaaaaaaaaaaaaaaaaaa"))
	if err != nil || !ok {
		t.Fatalf("lookup hit: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, env) {
		t.Fatalf("envelope = %x, want %x", got, env)
	}

	_, ok, err = ix.Lookup([]byte("bbbbbbbbbbbbbbbbbbbb"))
	if err != nil {
		t.Fatalf("lookup miss: %v", err)
	}
	if ok {
		t.Fatalf("unindexed object must report ok=false")
	}
}

// Object ids are raw hash bytes whose length follows the repository hash
// algorithm; the index must serve 32-byte ids as well as 20-byte ones.
func TestLookup_HashLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	id20 := bytes.Repeat([]byte{0x11}, 20)
	id32 := bytes.Repeat([]byte{0x22}, 32)
	buildIndex(t, path, map[string][]byte{
		string(id20): {0xaa, 0xbb},
		string(id32): {0xcc, 0xdd},
	})

	ix, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = ix.Close() }()

	for _, id := range [][]byte{id20, id32} {
		if _, ok, err := ix.Lookup(id); err != nil || !ok {
			t.Fatalf("lookup %d-byte id: ok=%v err=%v", len(id), ok, err)
		}
	}
}

func TestClose_ReleasesHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	buildIndex(t, path, nil)

	ix, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := ix.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, _, err := ix.Lookup([]byte("anything")); err == nil {
		t.Fatalf("lookup after close must fail")
	}
}
