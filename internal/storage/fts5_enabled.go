//go:build sqlite_fts5 || fts5

package storage

// FullTextCompiled reports whether the sqlite3 driver was built with FTS5.
const FullTextCompiled = true
