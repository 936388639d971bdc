// Package network owns the websocket boundary. Each connection gets a read
// pump that validates messages and forwards them to the session inbox; the
// session never blocks on a socket.
package network

import (
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/session"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	readLimit    = 1 << 20 // 1MB
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	addr string
	sess *session.Session
}

func NewServer(addr string, sess *session.Session) *Server {
	return &Server{addr: addr, sess: sess}
}

// ListenAndServe blocks; a bind failure is returned to the caller, which is
// the only fatal error in the system.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	log.Printf("network: listening on %s (ws endpoint: /ws)", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// wsConn adapts a websocket connection to session.Conn. Sends are
// serialized: the session loop and the ping goroutine may write
// concurrently.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("network: upgrade: %v", err)
		return
	}
	wc := &wsConn{conn: conn}

	reply := make(chan session.JoinResult, 1)
	s.sess.Inbox <- session.Join{Conn: wc, Reply: reply}
	res := <-reply
	if res.Err != nil {
		if b, err := protocol.Encode(protocol.Error{Type: protocol.MsgError, Reason: res.Err.Error()}); err == nil {
			_ = wc.Send(b)
		}
		_ = conn.Close()
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(wc, done)

	// Read pump. Any read error, graceful close included, becomes a Leave.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.sess.Inbox <- session.Leave{PlayerID: res.PlayerID}
			return
		}
		in, ok := decodeInput(res.PlayerID, msg)
		if !ok {
			continue
		}
		s.sess.Inbox <- in
	}
}

// decodeInput validates one inbound frame. Anything outside the protocol is
// dropped with a warning; the connection stays up.
func decodeInput(playerID string, msg []byte) (session.Input, bool) {
	typ, err := protocol.DecodeType(msg)
	if err != nil {
		log.Printf("network: dropping malformed message from %s: %v", playerID, err)
		return session.Input{}, false
	}
	if typ != protocol.MsgInput {
		log.Printf("network: dropping unexpected %q message from %s", typ, playerID)
		return session.Input{}, false
	}
	in, err := protocol.Decode[protocol.Input](msg)
	if err != nil {
		log.Printf("network: dropping undecodable input from %s: %v", playerID, err)
		return session.Input{}, false
	}
	if !finite(in.DX) || !finite(in.DY) {
		log.Printf("network: dropping non-finite input from %s", playerID)
		return session.Input{}, false
	}
	return session.Input{PlayerID: playerID, DX: in.DX, DY: in.DY, SentAt: in.SentAt}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func pingLoop(c *wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
