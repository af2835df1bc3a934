// SPDX-License-Identifier: MIT
package timing

import (
	"sync/atomic"
	"time"

	applog "spectra/internal/log"
)

// Observer receives every measured duration.
type Observer func(name string, elapsed time.Duration)

var observer atomic.Pointer[Observer]

// SetObserver installs fn to receive measurements; nil removes it.
func SetObserver(fn Observer) {
	if fn == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&fn)
}

// Measure starts a stopwatch labelled name and returns the function that
// stops it. Intended use:
//
//	defer timing.Measure("FFT")()
//
// The elapsed time is logged at debug level and passed to the observer, and
// never alters the caller's results.
func Measure(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		applog.Debugf("Timing: %s took %s", name, elapsed)
		if fn := observer.Load(); fn != nil {
			(*fn)(name, elapsed)
		}
		return elapsed
	}
}
