// Package sqlerr classifies database driver errors.
//
// It turns Postgres SQLSTATE codes (pgx) and SQLite result codes
// (modernc) into one small Code enum. The service layer uses the result
// as log fields when it reports a "Database Error"; the HTTP layer uses
// HandleError for anything that escaped the service's own error types.
package sqlerr
