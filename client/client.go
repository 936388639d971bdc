package client

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

// Eviction keeps a little history behind the render time so jitter in frame
// timing never discards a still-needed bracket.
const evictMargin = 100 * time.Millisecond

// Client owns one connection to the server. A read pump decodes frames into
// a channel; the frame loop calls View, which first ingests everything
// pending and then interpolates, so the buffer is never touched mid-render.
type Client struct {
	conn        *websocket.Conn
	welcome     protocol.Welcome
	interpDelay time.Duration

	buf      *Buffer
	incoming chan protocol.State
	started  atomic.Bool
	closed   atomic.Bool
}

// Dial connects and waits for the welcome message.
func Dial(url string, interpDelay time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("reading welcome: %w", err)
	}
	typ, err := protocol.DecodeType(msg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("reading welcome: %w", err)
	}
	switch typ {
	case protocol.MsgWelcome:
	case protocol.MsgError:
		e, _ := protocol.Decode[protocol.Error](msg)
		conn.Close()
		return nil, fmt.Errorf("server refused connection: %s", e.Reason)
	default:
		conn.Close()
		return nil, fmt.Errorf("expected welcome, got %q", typ)
	}
	welcome, err := protocol.Decode[protocol.Welcome](msg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("decoding welcome: %w", err)
	}

	c := &Client{
		conn:        conn,
		welcome:     welcome,
		interpDelay: interpDelay,
		buf:         NewBuffer(),
		incoming:    make(chan protocol.State, 256),
	}
	go c.readPump()
	return c, nil
}

func (c *Client) Welcome() protocol.Welcome { return c.welcome }
func (c *Client) Started() bool             { return c.started.Load() }
func (c *Client) Closed() bool              { return c.closed.Load() }

func (c *Client) Close() error {
	c.closed.Store(true)
	return c.conn.Close()
}

func (c *Client) readPump() {
	defer c.closed.Store(true)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		typ, err := protocol.DecodeType(msg)
		if err != nil {
			log.Printf("client: dropping malformed server message: %v", err)
			continue
		}
		switch typ {
		case protocol.MsgStart:
			c.started.Store(true)
		case protocol.MsgState:
			st, err := protocol.Decode[protocol.State](msg)
			if err != nil {
				log.Printf("client: dropping undecodable state: %v", err)
				continue
			}
			select {
			case c.incoming <- st:
			default:
				// The frame loop has stalled for seconds. Shed the frame
				// rather than block the pump.
				log.Printf("client: ingest backlog full, dropping snapshot %d", st.Timestamp)
			}
		default:
			log.Printf("client: ignoring %q message", typ)
		}
	}
}

// View ingests all pending snapshots, then computes the frame's render
// state at now minus the interpolation delay.
func (c *Client) View(now time.Time) (View, bool) {
	for {
		select {
		case st := <-c.incoming:
			c.buf.Insert(st)
			continue
		default:
		}
		break
	}

	renderTime := now.Add(-c.interpDelay).UnixMilli()
	c.buf.EvictOlderThan(renderTime - evictMargin.Milliseconds())
	return Interpolate(c.buf, renderTime)
}

// SendInput ships the current movement intent to the server.
func (c *Client) SendInput(dx, dy float64, now time.Time) error {
	b, err := protocol.Encode(protocol.Input{
		Type:   protocol.MsgInput,
		DX:     dx,
		DY:     dy,
		SentAt: now.UnixMilli(),
	})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, b)
}
