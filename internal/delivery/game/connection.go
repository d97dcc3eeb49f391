package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gomoku_arena/internal/domain/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Connection is one websocket client on one topic.
type Connection struct {
	ID string

	ws     *websocket.Conn
	send   chan []byte
	mu     sync.Mutex
	closed bool
}

func (c *Connection) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Connection) writePump(log *zap.SugaredLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debugw("websocket write failed", "conn", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ConnectionPool tracks open connections by id and delivers events to them
// without blocking. A connection counts as live from Open until Close, which
// the read loop calls after its disconnect handling.
type ConnectionPool struct {
	mu    sync.RWMutex
	conns map[string]*Connection
	live  sync.WaitGroup
	log   *zap.SugaredLogger
}

func NewConnectionPool(log *zap.SugaredLogger) *ConnectionPool {
	return &ConnectionPool{
		conns: make(map[string]*Connection),
		log:   log,
	}
}

func (p *ConnectionPool) Open(ws *websocket.Conn) *Connection {
	c := &Connection{
		ID:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	p.mu.Lock()
	p.conns[c.ID] = c
	p.live.Add(1)
	p.mu.Unlock()
	return c
}

func (p *ConnectionPool) Close(id string) {
	p.mu.Lock()
	c, ok := p.conns[id]
	delete(p.conns, id)
	p.mu.Unlock()
	if ok {
		c.close()
		p.live.Done()
	}
}

// CloseAll drops every connection; their read loops then run disconnect
// handling.
func (p *ConnectionPool) CloseAll() {
	p.mu.RLock()
	conns := make([]*Connection, 0, len(p.conns))
	for _, c := range p.conns {
		conns = append(conns, c)
	}
	p.mu.RUnlock()
	for _, c := range conns {
		_ = c.ws.Close()
	}
}

// Wait blocks until every connection opened so far has been closed.
func (p *ConnectionPool) Wait() {
	p.live.Wait()
}

func (p *ConnectionPool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns)
}

func (p *ConnectionPool) Send(connID string, event game.Event) {
	p.mu.RLock()
	c, ok := p.conns[connID]
	p.mu.RUnlock()
	if !ok {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		p.log.Errorw("event marshal failed", "event", event.Name, "error", err)
		return
	}
	if !c.enqueue(msg) {
		p.log.Warnw("event dropped", "event", event.Name, "conn", connID)
	}
}
