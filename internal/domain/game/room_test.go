package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stopCounter struct{ stops int }

func (s *stopCounter) Stop() { s.stops++ }

func TestRoomParticipants(t *testing.T) {
	r := NewRoom("ABC1234", RoomOptions{Variant: QuickRoom{}, Timed: true, Budget: 150 * time.Second})

	assert.Equal(t, ModeQuick, r.Mode())
	assert.Equal(t, 150*time.Second, r.Clocks[1].Remaining)
	assert.Empty(t, r.Mover())

	require.True(t, r.AddParticipant("c1", "alice"))
	assert.False(t, r.AddParticipant("c1", "alice"))
	require.True(t, r.AddParticipant("c2", "bob"))
	assert.False(t, r.AddParticipant("c3", "carol"))

	assert.Equal(t, []string{"c1", "c2"}, r.Participants)
	assert.Equal(t, []string{"alice", "bob"}, r.Names())

	r.TurnOrigin = 1
	assert.Equal(t, "c2", r.Mover())
	r.Round++
	assert.Equal(t, "c1", r.Mover())
	assert.Equal(t, 2, r.Parity())
}

func TestOutcomeIsMonotonic(t *testing.T) {
	r := NewRoom("ABCD", RoomOptions{Variant: &PrivateRoom{}})
	assert.Equal(t, OutcomeUndetermined, r.Outcome)

	r.Begin()
	assert.Equal(t, OutcomeInProgress, r.Outcome)

	r.Decide()
	r.Begin()
	assert.True(t, r.Decided())
	assert.Nil(t, r.ClockViews())
}

func TestRoomVariants(t *testing.T) {
	ranked := NewRoom("RANKED1", RoomOptions{Variant: &RankedRoom{Ratings: map[string]float64{"alice": 1200}}})
	rv, ok := ranked.Ranked()
	require.True(t, ok)
	assert.Equal(t, 1200.0, rv.Ratings["alice"])
	_, ok = ranked.Private()
	assert.False(t, ok)

	private := NewRoom("PRIV", RoomOptions{Variant: &PrivateRoom{Creator: "w1"}})
	pv, ok := private.Private()
	require.True(t, ok)
	pv.AddWaiting("w1")
	pv.AddWaiting("w1")
	pv.AddWaiting("w2")
	assert.Equal(t, []string{"w1", "w2"}, pv.Waiting)
	assert.True(t, pv.RemoveWaiting("w1"))
	assert.False(t, pv.RemoveWaiting("w1"))
	assert.Equal(t, ModePrivate, private.Mode())
}

func TestStopTick(t *testing.T) {
	r := NewRoom("ABC1234", RoomOptions{Variant: QuickRoom{}})
	tick := &stopCounter{}
	r.Tick = tick

	r.StopTick()
	r.StopTick()
	assert.Equal(t, 1, tick.stops)
	assert.Nil(t, r.Tick)
}

func TestModeIDLength(t *testing.T) {
	assert.Equal(t, 7, ModeQuick.IDLength())
	assert.Equal(t, 7, ModeRanked.IDLength())
	assert.Equal(t, 4, ModePrivate.IDLength())
}
