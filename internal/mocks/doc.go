// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// function-field mocks are shared across test packages: set the Fn field to
// override one method, or rely on the map-backed default behavior.
package mocks
