// Package sqlerr classifies database driver errors.
//
// It normalizes pgx and lib/pq errors into Error so the cause of a store
// fault can be logged with its SQLSTATE, table and constraint. Clients never
// see any of it: HandleError reduces every driver error to a 500 (or a 404
// for "no rows").
package sqlerr
