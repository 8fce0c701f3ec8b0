// Package shared holds helpers used across packages.
//
// The testutil subpackage provides a capturing slog handler for asserting on
// structured log output and attendance CSV fixtures for tests.
package shared
