// Package postgres implements the persistence interfaces from
// internal/store on top of PostgreSQL. It owns the SQL text, the row
// mapping for users and tasks, and the translation of driver errors into
// the store's error vocabulary.
package postgres
