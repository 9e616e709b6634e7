package source

import (
	"context"
	"sort"
	"sync"

	specs "github.com/chrisconley/trafficreport/specs"
)

// MemoryStore keeps detections ordered by timestamp. It is safe for
// concurrent use by multiple goroutines.
type MemoryStore struct {
	mu     sync.RWMutex
	events []specs.DetectionEventSpec
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record inserts event, keeping the slice sorted. Equal timestamps keep
// arrival order.
func (s *MemoryStore) Record(ctx context.Context, event specs.DetectionEventSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Timestamp.After(event.Timestamp)
	})
	s.events = append(s.events, specs.DetectionEventSpec{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = event
	return nil
}

func (s *MemoryStore) FetchEvents(ctx context.Context, window specs.TimeWindowSpec) ([]specs.DetectionEventSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].Timestamp.Before(window.Start)
	})
	hi := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].Timestamp.Before(window.End)
	})
	if hi < lo {
		hi = lo
	}

	snapshot := make([]specs.DetectionEventSpec, hi-lo)
	copy(snapshot, s.events[lo:hi])
	return snapshot, nil
}

// Len returns the number of stored detections.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
