package imagepkg

import (
	"log"
	"sync/atomic"
)

var debugLogging atomic.Bool

// SetDebugLogging enables or disables per-row logging while composing.
func SetDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

func logDebug(format string, args ...interface{}) {
	if debugLogging.Load() {
		log.Printf(format, args...)
	}
}
