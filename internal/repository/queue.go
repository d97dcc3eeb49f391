package repo

import (
	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
)

// MatchQueue pairs waiting connections strictly in arrival order.
type MatchQueue struct {
	entries []game.QueueEntry
}

func NewMatchQueue() *MatchQueue {
	return &MatchQueue{}
}

func (q *MatchQueue) Enqueue(entry game.QueueEntry) error {
	for _, e := range q.entries {
		if e.ConnID == entry.ConnID {
			return errs.ErrAlreadyQueued
		}
	}
	q.entries = append(q.entries, entry)
	return nil
}

// DequeuePairIfReady removes and returns the two longest waiting entries.
func (q *MatchQueue) DequeuePairIfReady() ([2]game.QueueEntry, bool) {
	var pair [2]game.QueueEntry
	if len(q.entries) < 2 {
		return pair, false
	}
	pair[0], pair[1] = q.entries[0], q.entries[1]
	q.entries = append(q.entries[:0:0], q.entries[2:]...)
	return pair, true
}

func (q *MatchQueue) Remove(connID string) bool {
	for i, e := range q.entries {
		if e.ConnID == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *MatchQueue) Len() int {
	return len(q.entries)
}
