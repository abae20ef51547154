// Package memid generates identifiers for the in-memory repositories.
package memid

import (
	"strconv"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns the current Unix time in nanoseconds as a decimal string.
// Values are strictly increasing within the process even when the clock
// stalls or steps back.
func Next() string {
	mu.Lock()
	defer mu.Unlock()

	n := time.Now().UnixNano()
	if n <= last {
		n = last + 1
	}
	last = n
	return strconv.FormatInt(n, 10)
}
