// internal/app/system/digest/locks.go
package digest

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// courseLocks hands out one mutex per course ID so a manual trigger and a
// scheduled run can never process the same course concurrently. Locks are
// never reclaimed; the map grows with the number of distinct courses seen,
// which is bounded by the course collection itself.
type courseLocks struct {
	mu sync.Mutex
	m  map[primitive.ObjectID]*sync.Mutex
}

func (l *courseLocks) get(id primitive.ObjectID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = make(map[primitive.ObjectID]*sync.Mutex)
	}
	if _, ok := l.m[id]; !ok {
		l.m[id] = &sync.Mutex{}
	}
	return l.m[id]
}
