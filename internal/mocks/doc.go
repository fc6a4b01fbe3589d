// Package mocks provides test doubles: in-memory store implementations, a
// stub database handle whose transactions serialize on a mutex, a settable
// clock and function-override mocks for service interfaces.
package mocks
