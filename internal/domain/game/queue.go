package game

// QueueEntry is a connection waiting on a search topic. Rating is set for the
// ranked queue only.
type QueueEntry struct {
	ConnID      string
	DisplayName string
	Rating      *float64
}
