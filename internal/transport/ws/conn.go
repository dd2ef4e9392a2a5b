package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"smashduel/internal/domain"
)

const (
	// Time allowed to write a message to the server
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the server
	pongWait = 60 * time.Second

	// Send pings with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the server
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256

	// Delay between reconnect attempts after a dropped connection
	reconnectDelay = 5 * time.Second

	// Timeout for a single dial attempt
	dialTimeout = 10 * time.Second
)

// ErrConnClosed is returned when sending on a closed connection
var ErrConnClosed = errors.New("websocket connection closed")

// Conn is the client side of the match event stream. It dials the game
// server, decodes event envelopes and fans them out to per-match sinks,
// and frames outbound intents. It implements engine.EventStream and
// engine.IntentSender.
type Conn struct {
	url      string
	token    string
	clientID string
	logger   zerolog.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	connDone chan struct{}
	closed   bool

	send chan []byte
	done chan struct{}

	sinksMu sync.RWMutex
	sinks   map[string]func(domain.Event)
}

// Dial connects to the server's websocket endpoint. The token, when set,
// is sent as a bearer Authorization header on the handshake.
func Dial(ctx context.Context, url, token string, logger zerolog.Logger) (*Conn, error) {
	c := &Conn{
		url:      url,
		token:    token,
		clientID: uuid.NewString(),
		logger:   logger.With().Str("component", "ws").Logger(),
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		sinks:    make(map[string]func(domain.Event)),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	go c.run()

	c.logger.Info().Str("url", url).Msg("websocket connected")
	return c, nil
}

// Subscribe registers a sink for one match's events. A second subscribe
// for the same match replaces the sink.
func (c *Conn) Subscribe(matchID string, sink func(domain.Event)) error {
	if matchID == "" {
		return errors.New("matchID is required")
	}
	c.sinksMu.Lock()
	defer c.sinksMu.Unlock()
	c.sinks[matchID] = sink
	c.logger.Debug().Str("matchID", matchID).Msg("subscribed to match")
	return nil
}

// Unsubscribe drops the sink for a match. Safe when not subscribed.
func (c *Conn) Unsubscribe(matchID string) {
	c.sinksMu.Lock()
	defer c.sinksMu.Unlock()
	delete(c.sinks, matchID)
	c.logger.Debug().Str("matchID", matchID).Msg("unsubscribed from match")
}

// SendIntent frames and queues an outbound intent. Fire-and-forget: a
// full buffer drops the message with a warning rather than blocking the
// caller.
func (c *Conn) SendIntent(matchID string, intent domain.Intent) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrConnClosed
	}

	data, err := EncodeIntent(matchID, c.clientID, intent)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn().Str("type", string(intent.Type())).Msg("send buffer full, intent dropped")
		return nil
	}
}

// Close shuts the connection down for good; no reconnect follows
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	close(c.done)
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// connect performs one dial and starts the write pump for that socket
func (c *Conn) connect(ctx context.Context) error {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	header.Set("X-Client-Id", c.clientID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connDone = make(chan struct{})
	connDone := c.connDone
	c.mu.Unlock()

	go c.writePump(conn, connDone)
	return nil
}

// run reads from the current socket and redials with a fixed delay when
// it drops, until Close is called
func (c *Conn) run() {
	for {
		c.readPump()

		if c.isClosed() {
			return
		}
		c.logger.Warn().Dur("delay", reconnectDelay).Msg("connection lost, reconnecting")

		for {
			time.Sleep(reconnectDelay)
			if c.isClosed() {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
			err := c.connect(ctx)
			cancel()
			if err == nil {
				c.logger.Info().Msg("websocket reconnected")
				break
			}
			c.logger.Warn().Err(err).Msg("reconnect failed")
		}
	}
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// readPump pumps messages from the socket until it breaks
func (c *Conn) readPump() {
	c.mu.Lock()
	conn := c.conn
	connDone := c.connDone
	c.mu.Unlock()

	defer close(connDone)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("websocket read error")
			}
			conn.Close()
			return
		}
		c.dispatch(message)
	}
}

// writePump pumps queued intents to the socket and keeps it alive with
// pings. It is bound to one socket and exits when that socket is done.
func (c *Conn) writePump(conn *websocket.Conn, connDone chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-c.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-connDone:
			return
		case message := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any queued intents into the same websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch decodes one inbound frame and routes it to the matching sink.
// Malformed or unknown frames are logged and dropped.
func (c *Conn) dispatch(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Debug().Err(err).Msg("malformed envelope dropped")
		return
	}

	event, err := DecodeEvent(env)
	if err != nil {
		c.logger.Debug().Err(err).Msg("undecodable event dropped")
		return
	}

	c.sinksMu.RLock()
	defer c.sinksMu.RUnlock()

	if matchID := event.Match(); matchID != "" {
		if sink, ok := c.sinks[matchID]; ok {
			sink(event)
		}
		return
	}

	// Events without a match id go to every subscriber
	for _, sink := range c.sinks {
		sink(event)
	}
}
