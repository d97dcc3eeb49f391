package mocks

import (
	"sync"

	"gomoku_arena/internal/random"
)

// MockRandom replays queued results. An exhausted queue yields 0 or "".
type MockRandom struct {
	mu            sync.Mutex
	intnResults   []int
	stringResults []string
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intnResults) == 0 {
		return 0
	}
	v := r.intnResults[0]
	r.intnResults = r.intnResults[1:]
	return v
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringResults) == 0 {
		return ""
	}
	v := r.stringResults[0]
	r.stringResults = r.stringResults[1:]
	return v
}

func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = append(r.intnResults, values...)
}

func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringResults = append(r.stringResults, values...)
}
