// Package sqlite provides durable vector partitions backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each partition owns a separate database file so clearing
// or rebuilding one partition never touches the other:
//
//	<data_dir>/permanent/vectors.db
//	<data_dir>/temporary/vectors.db
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Embeddings are stored as little-endian float32 blobs.
//
// # Search
//
// On open, every entry is loaded into a vectorindex.Index. Searches are
// exact cosine scans over that snapshot; writes go to SQLite first and then
// to the snapshot, under the partition's write lock.
package sqlite
