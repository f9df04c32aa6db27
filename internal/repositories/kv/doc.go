// Package kv provides the durable key-value layer behind the answer store and
// the category registry.
//
// # Overview
//
// The package defines a Repository interface for named entries holding opaque
// byte values (JSON documents in practice) and a Store interface that adds
// all-or-nothing multi-key writes. A SQLite-backed implementation
// (SQLiteStore / SQLiteRepository) persists entries in the kv_entries table
// through a dbx.DBTX (either *sql.DB or *sql.Tx). MemoryStore keeps entries in
// a map and is used by tests and the ":memory:" database setting.
//
// # Contract
//
//   - Get returns (nil, nil) for a missing key.
//   - Set overwrites the whole value; there are no partial writes.
//   - Atomic runs fn against a transactional Repository and discards every
//     write made inside it when fn fails.
//
// Typical Usage
//
//	store := kv.NewSQLiteStore(db)
//	_ = store.Set(ctx, "answers", data)
//	v, _ := store.Get(ctx, "answers")
//	_ = store.Atomic(ctx, func(ctx context.Context, tx kv.Repository) error {
//	    if err := tx.Set(ctx, "answers", a); err != nil {
//	        return err
//	    }
//	    return tx.Set(ctx, "categories", c)
//	})
package kv
