// Package shared provides common utilities and test helpers used across
// the thermal pipeline codebase. It is a home for functionality that
// does not belong to any specific domain or architectural layer.
//
// The testutil subpackage holds fixture generators for raw sensor
// files and a buffered slog handler so tests can assert on emitted log
// records. Nothing in this package carries business logic.
package shared
