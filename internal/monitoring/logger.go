// Package monitoring holds the diagnostic logger shared by the library
// packages. Results are never written here, only progress and timings.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf and
// may be replaced with SetLogger, e.g. to mute it in tests.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Timed logs "<name> took <elapsed>" when the returned func is called.
//
//	defer monitoring.Timed("gap search")()
func Timed(name string) func() {
	start := time.Now()
	return func() {
		Logf("%s took %v", name, time.Since(start).Round(time.Microsecond))
	}
}
