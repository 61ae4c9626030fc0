// Package library persists lesson-generation tasks in SQLite.
//
// Each row mirrors one task envelope: its status, progress, failure message
// and, once completed, the raw lesson payload. Rows are keyed by UUID so
// they can be referenced by unique prefix from the command line. Search
// ranks completed lessons by TF-IDF similarity of their text.
//
// The schema version lives in SQLite's user_version field. Schema changes
// bump schemaVersion; a database at another version is rejected with
// ErrSchemaMismatch rather than migrated in place.
package library
