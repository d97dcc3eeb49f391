package game

import (
	"time"

	"gomoku_arena/internal/clock"
)

type Mode string

const (
	ModeQuick   Mode = "quick"
	ModePrivate Mode = "private"
	ModeRanked  Mode = "ranked"
)

var Modes = []Mode{ModeQuick, ModePrivate, ModeRanked}

// IDLength is the length of generated room ids for the mode.
func (m Mode) IDLength() int {
	if m == ModePrivate {
		return 4
	}
	return 7
}

type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeInProgress
	OutcomeDecided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in-progress"
	case OutcomeDecided:
		return "decided"
	default:
		return "undetermined"
	}
}

// Variant carries the mode specific part of a room.
type Variant interface {
	Mode() Mode
}

type QuickRoom struct{}

func (QuickRoom) Mode() Mode { return ModeQuick }

type PrivateRoom struct {
	// Creator is the waiting-room connection that asked for the room.
	Creator string
	Waiting []string
	// Claimed is set once someone other than the creator joins the waiting room.
	Claimed bool
}

func (*PrivateRoom) Mode() Mode { return ModePrivate }

func (p *PrivateRoom) AddWaiting(connID string) {
	for _, c := range p.Waiting {
		if c == connID {
			return
		}
	}
	p.Waiting = append(p.Waiting, connID)
}

func (p *PrivateRoom) RemoveWaiting(connID string) bool {
	for i, c := range p.Waiting {
		if c == connID {
			p.Waiting = append(p.Waiting[:i], p.Waiting[i+1:]...)
			return true
		}
	}
	return false
}

type RankedRoom struct {
	// Ratings are snapshots keyed by display name, taken at pairing.
	Ratings map[string]float64
}

func (*RankedRoom) Mode() Mode { return ModeRanked }

type RoomOptions struct {
	Variant Variant
	Timed   bool
	Budget  time.Duration
}

type Room struct {
	ID           string
	Participants []string
	DisplayNames map[string]string
	Board        Board
	TurnOrigin   int
	Round        int
	Outcome      Outcome
	Timed        bool
	Clocks       [2]PlayerClock
	Variant      Variant
	Tick         clock.Timer
}

func NewRoom(id string, opts RoomOptions) *Room {
	r := &Room{
		ID:           id,
		DisplayNames: make(map[string]string, 2),
		Timed:        opts.Timed,
		Variant:      opts.Variant,
	}
	if opts.Timed {
		r.Clocks[0].Remaining = opts.Budget
		r.Clocks[1].Remaining = opts.Budget
	}
	return r
}

func (r *Room) Mode() Mode {
	return r.Variant.Mode()
}

func (r *Room) Ranked() (*RankedRoom, bool) {
	v, ok := r.Variant.(*RankedRoom)
	return v, ok
}

func (r *Room) Private() (*PrivateRoom, bool) {
	v, ok := r.Variant.(*PrivateRoom)
	return v, ok
}

func (r *Room) Full() bool {
	return len(r.Participants) >= 2
}

func (r *Room) HasParticipant(connID string) bool {
	return r.ParticipantIndex(connID) >= 0
}

func (r *Room) ParticipantIndex(connID string) int {
	for i, p := range r.Participants {
		if p == connID {
			return i
		}
	}
	return -1
}

// AddParticipant registers a connection unless the room is full or it already
// joined.
func (r *Room) AddParticipant(connID, displayName string) bool {
	if r.Full() || r.HasParticipant(connID) {
		return false
	}
	r.Participants = append(r.Participants, connID)
	r.DisplayNames[connID] = displayName
	return true
}

// Parity is round + turn origin; its value mod 2 selects the mover.
func (r *Room) Parity() int {
	return r.Round + r.TurnOrigin
}

func (r *Room) MoverIndex() int {
	return r.Parity() % 2
}

func (r *Room) Mover() string {
	if !r.Full() {
		return ""
	}
	return r.Participants[r.MoverIndex()]
}

// Begin moves an undetermined room into play. A decided room stays decided.
func (r *Room) Begin() {
	if r.Outcome == OutcomeUndetermined {
		r.Outcome = OutcomeInProgress
	}
}

func (r *Room) Decide() {
	r.Outcome = OutcomeDecided
}

func (r *Room) Decided() bool {
	return r.Outcome == OutcomeDecided
}

func (r *Room) StopTick() {
	if r.Tick != nil {
		r.Tick.Stop()
		r.Tick = nil
	}
}

func (r *Room) ClockViews() []ClockView {
	if !r.Timed {
		return nil
	}
	return []ClockView{r.Clocks[0].View(), r.Clocks[1].View()}
}

// Names returns the display names in join order.
func (r *Room) Names() []string {
	names := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		names[i] = r.DisplayNames[p]
	}
	return names
}
