// Package telemetry exposes a websocket endpoint that streams JSON
// snapshots of a running console's CPU, interrupt, and LCD state.
// It is grounded on the teacher's display/web hub: a mutex-guarded
// client set, each client with a buffered send channel drained by its
// own writer goroutine, with xxhash used to suppress re-sending an
// unchanged snapshot, the same role it plays in the teacher's
// frame-cache deduplication.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/gomeboy/internal/console"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// Snapshot is the wire format of one telemetry frame.
type Snapshot struct {
	PC     uint16 `json:"pc"`
	SP     uint16 `json:"sp"`
	A      uint8  `json:"a"`
	F      uint8  `json:"f"`
	IME    bool   `json:"ime"`
	IF     uint8  `json:"if"`
	IE     uint8  `json:"ie"`
	LY     uint8  `json:"ly"`
	STAT   uint8  `json:"stat"`
	LCDC   uint8  `json:"lcdc"`
	Cycles uint64 `json:"cycles"`
}

// Capture reads the current state of c into a Snapshot. cycles is the
// caller's running total of T-states elapsed, since the console itself
// doesn't keep one.
func Capture(c *console.Console, cycles uint64) Snapshot {
	return Snapshot{
		PC:     c.CPU.PC,
		SP:     c.CPU.SP,
		A:      c.CPU.A,
		F:      c.CPU.F,
		IME:    c.Interrupt.IME,
		IF:     c.Bus.IF(),
		IE:     c.Bus.IE(),
		LY:     c.Bus.LY(),
		STAT:   c.Bus.STAT(),
		LCDC:   c.Bus.LCDC(),
		Cycles: cycles,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is a single connected websocket subscriber.
type client struct {
	send chan []byte
	conn *websocket.Conn
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Server broadcasts Snapshot frames to every connected client, skipping
// a frame whose hash matches the last one sent.
type Server struct {
	log log.Logger

	mu       sync.Mutex
	clients  map[*client]bool
	lastHash uint64
}

// NewServer returns a Server ready to have its Handler mounted on an
// http.ServeMux and its Publish method called once per frame.
func NewServer(logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Server{log: logger, clients: make(map[*client]bool)}
}

// Handler upgrades incoming requests to websocket connections and
// registers them as telemetry subscribers.
func (s *Server) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("telemetry: upgrade failed: %v", err)
		return
	}

	c := &client{send: make(chan []byte, 16), conn: conn}
	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	go c.writePump()
}

// Publish marshals snap and broadcasts it to every connected client,
// unless its hash is identical to the previously published snapshot.
func (s *Server) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Errorf("telemetry: marshal failed: %v", err)
		return
	}

	hash := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if hash == s.lastHash {
		return
	}
	s.lastHash = hash

	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}
}
