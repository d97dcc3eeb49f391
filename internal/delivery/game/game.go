package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
	"gomoku_arena/internal/httpresponse"
	gameuc "gomoku_arena/internal/usecase/game"
	"gomoku_arena/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type envelope struct {
	Event game.EventName  `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	pool   *ConnectionPool
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, pool *ConnectionPool) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		pool:   pool,
	}
}

// HandleSearch serves the quick or ranked search topic.
func (g *GameHandler) HandleSearch(mode game.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.serve(w, r,
			func(ctx context.Context, c *Connection, msg envelope) { g.onSearch(ctx, mode, c, msg) },
			func(c *Connection) { g.gameUC.LeaveSearch(mode, c.ID) },
		)
	}
}

// HandleWaitingRoom serves the private waiting-room topic.
func (g *GameHandler) HandleWaitingRoom(w http.ResponseWriter, r *http.Request) {
	g.serve(w, r,
		func(_ context.Context, c *Connection, msg envelope) { g.onWaiting(c, msg) },
		func(c *Connection) { g.gameUC.LeaveWaitingRoom(c.ID) },
	)
}

// HandleGame serves a gameplay topic.
func (g *GameHandler) HandleGame(mode game.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.serve(w, r,
			func(_ context.Context, c *Connection, msg envelope) { g.onGame(mode, c, msg) },
			func(c *Connection) { g.gameUC.Disconnect(mode, c.ID) },
		)
	}
}

func (g *GameHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, struct {
		gameuc.Stats
		Connections int `json:"connections"`
	}{g.gameUC.Stats(), g.pool.Count()})
}

// serve runs one connection. Messages from it are handled in arrival order;
// onClose runs once the socket is gone.
func (g *GameHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	onMessage func(context.Context, *Connection, envelope),
	onClose func(*Connection),
) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("websocket upgrade failed", "path", r.URL.Path, "error", err)
		return
	}

	c := g.pool.Open(ws)
	go c.writePump(g.log)
	defer func() {
		onClose(c)
		g.pool.Close(c.ID)
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	g.log.Debugw("connection opened", "path", r.URL.Path, "conn", c.ID)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Infow("connection lost", "conn", c.ID, "error", err)
			}
			return
		}
		var msg envelope
		if err := utils.DecodeJSON(data, &msg); err != nil {
			g.reply(c, game.EventError, game.ReasonPayload{Reason: err.Error()})
			continue
		}
		onMessage(r.Context(), c, msg)
	}
}

func (g *GameHandler) reply(c *Connection, name game.EventName, data any) {
	g.pool.Send(c.ID, game.Event{Name: name, Data: data})
}

func (g *GameHandler) decode(c *Connection, msg envelope, dst any) bool {
	if err := utils.DecodeJSON(msg.Data, dst); err != nil {
		g.reply(c, game.EventError, game.ReasonPayload{Reason: err.Error()})
		return false
	}
	return true
}

func (g *GameHandler) unknown(c *Connection, msg envelope) {
	g.reply(c, game.EventError, game.ReasonPayload{Reason: "unknown event " + string(msg.Event)})
}

func (g *GameHandler) onSearch(ctx context.Context, mode game.Mode, c *Connection, msg envelope) {
	if msg.Event != game.EventBeginSearch {
		g.unknown(c, msg)
		return
	}
	var req game.SearchRequest
	if !g.decode(c, msg, &req) {
		return
	}
	err := g.gameUC.BeginSearch(ctx, mode, c.ID, req.DisplayName)
	switch {
	case err == nil, errors.Is(err, errs.ErrAlreadyQueued):
	default:
		g.log.Warnw("search refused", "mode", mode, "conn", c.ID, "error", err)
		g.reply(c, game.EventSearchFailed, game.ReasonPayload{Reason: err.Error()})
	}
}

func (g *GameHandler) onWaiting(c *Connection, msg envelope) {
	switch msg.Event {
	case game.EventCreateRoom:
		var req game.CreateRoomRequest
		if !g.decode(c, msg, &req) {
			return
		}
		if _, err := g.gameUC.CreatePrivateRoom(c.ID, req.DurationMinutes); err != nil {
			g.log.Warnw("private room not created", "conn", c.ID, "error", err)
			if errors.Is(err, errs.ErrInvalidRoomOptions) {
				g.reply(c, game.EventRoomInvalid, nil)
				return
			}
			g.reply(c, game.EventError, game.ReasonPayload{Reason: err.Error()})
		}
	case game.EventJoin:
		var req game.JoinRequest
		if !g.decode(c, msg, &req) {
			return
		}
		if err := g.gameUC.JoinWaitingRoom(c.ID, req.RoomID); err != nil {
			g.reply(c, game.EventRoomInvalid, nil)
		}
	default:
		g.unknown(c, msg)
	}
}

func (g *GameHandler) onGame(mode game.Mode, c *Connection, msg envelope) {
	switch msg.Event {
	case game.EventJoin:
		var req game.JoinRequest
		if !g.decode(c, msg, &req) {
			return
		}
		if err := g.gameUC.JoinRoom(mode, req.RoomID, c.ID, req.DisplayName); err != nil {
			g.reply(c, game.EventRoomMissing, nil)
		}
	case game.EventMove:
		var req game.MoveRequest
		if !g.decode(c, msg, &req) {
			return
		}
		err := g.gameUC.Move(mode, req.RoomID, c.ID, req.X, req.Y)
		switch {
		case err == nil:
		case errors.Is(err, errs.ErrRoomNotFound):
			g.reply(c, game.EventRoomMissing, nil)
		default:
			g.log.Debugw("move rejected", "room", req.RoomID, "conn", c.ID, "error", err)
		}
	default:
		g.unknown(c, msg)
	}
}
