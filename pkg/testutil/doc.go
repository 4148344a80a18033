// Package testutil provides test assertions and filesystem helpers
// shared across the test suites.
package testutil
