package game

type EventName string

// Client to server.
const (
	EventJoin        EventName = "join"
	EventMove        EventName = "move"
	EventBeginSearch EventName = "beginSearch"
	EventCreateRoom  EventName = "createRoom"
)

// Server to client.
const (
	EventGameBegun     EventName = "gameBegun"
	EventRoomMissing   EventName = "roomMissing"
	EventMoveAccepted  EventName = "moveAccepted"
	EventWin           EventName = "win"
	EventTie           EventName = "tie"
	EventPlayerLeft    EventName = "playerLeft"
	EventTimeSync      EventName = "timeSync"
	EventGameCreated   EventName = "gameCreated"
	EventSearchFailed  EventName = "searchFailed"
	EventRoomGenerated EventName = "roomGenerated"
	EventRoomInvalid   EventName = "roomInvalid"
	EventError         EventName = "error"
)

type Event struct {
	Name EventName `json:"event"`
	Data any       `json:"data,omitempty"`
}

type JoinRequest struct {
	RoomID      string `json:"room_id"`
	DisplayName string `json:"display_name"`
}

type MoveRequest struct {
	RoomID string `json:"room_id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type SearchRequest struct {
	DisplayName string `json:"display_name"`
}

type CreateRoomRequest struct {
	DurationMinutes *int `json:"duration_minutes"`
}

type GameBegunPayload struct {
	FirstMover   string            `json:"first_mover"`
	DisplayNames map[string]string `json:"display_names"`
	TurnOrigin   int               `json:"turn_origin"`
}

type MoveAcceptedPayload struct {
	Mover        string      `json:"mover"`
	Round        int         `json:"round"`
	X            int         `json:"x"`
	Y            int         `json:"y"`
	Stone        Cell        `json:"stone"`
	Clocks       []ClockView `json:"clocks,omitempty"`
	Participants []string    `json:"participants"`
}

type WinPayload struct {
	Winner      string   `json:"winner"`
	RatingDelta *float64 `json:"rating_delta,omitempty"`
}

type TiePayload struct {
	RatingDelta *float64 `json:"rating_delta,omitempty"`
	Gainer      string   `json:"gainer,omitempty"`
}

type PlayerLeftPayload struct {
	RatingDelta *float64 `json:"rating_delta,omitempty"`
}

type TimeSyncPayload struct {
	Clocks  []ClockView `json:"clocks"`
	Running int         `json:"running"`
}

type RoomPayload struct {
	RoomID string `json:"room_id"`
}

type WaitingBegunPayload struct {
	RoomID string `json:"room_id"`
	// InitialRemaining is in seconds, nil for untimed rooms.
	InitialRemaining *float64 `json:"initial_remaining"`
}

type ReasonPayload struct {
	Reason string `json:"reason"`
}
