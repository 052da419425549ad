package models

import (
	"sync"
	"time"
)

// timestampPrecision is the finest unit every supported dialect stores:
// microseconds (postgres timestamptz, mysql datetime(6)).
const timestampPrecision = time.Microsecond

var creationClock struct {
	sync.Mutex
	last time.Time
}

// creationTime returns the current time at timestampPrecision, strictly
// after every value it returned before. Rows created by this process
// therefore never tie on created_at.
func creationTime() time.Time {
	creationClock.Lock()
	defer creationClock.Unlock()

	now := time.Now().Truncate(timestampPrecision)
	if !now.After(creationClock.last) {
		now = creationClock.last.Add(timestampPrecision)
	}
	creationClock.last = now
	return now
}
