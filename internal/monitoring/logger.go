// Package monitoring holds the diagnostic logger shared by the tracker packages.
package monitoring

import "log"

// Logf receives diagnostics from storage, migrations and the tracker. The CLI
// points it at the status line so messages do not land in the middle of a
// redrawn distance line.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. nil discards all diagnostics.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
