// Package storage provides the SQLite experiment archive.
//
// Every experiment a lab session records is appended to the archive, so
// history beyond the per-session bound of ten entries can still be queried
// and summarized. By default the archive lives in memory and disappears with
// the process:
//
//	store, err := storage.NewSQLiteStorage(storage.MemoryDSN)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Build Modes
//
// The pure Go driver (modernc.org/sqlite) is the default. Building with the
// sqlite_cgo tag switches to github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
//
// # Schema
//
// experiments holds one row per record with the selection snapshot and the
// matched reaction as JSON. experiment_elements indexes the snapshot by
// symbol so ListExperiments can filter on it. Migrations are versioned with
// semantic versions and applied in order on open.
package storage
