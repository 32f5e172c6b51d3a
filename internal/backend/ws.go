package backend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ErrClosed indicates the client has been shut down.
var ErrClosed = errors.New("backend client is closed")

// Default tunables for the websocket channel.
const (
	DefaultQueueSize    = 64
	DefaultWriteTimeout = 5 * time.Second
	DefaultDialTimeout  = 10 * time.Second
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithQueueSize sets the outbound queue capacity.
func WithQueueSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// WithAckHandler registers a callback for server acknowledgements. The
// callback runs on the read pump goroutine and must not block.
func WithAckHandler(fn AckFunc) ClientOption {
	return func(c *Client) {
		c.onAck = fn
	}
}

// Client is a websocket Notifier. Operations are queued on a buffered
// channel and drained by a single writer goroutine; a reader goroutine
// consumes acknowledgements. Neither pump ever blocks the editor.
type Client struct {
	conn *websocket.Conn
	send chan Operation

	queueSize    int
	writeTimeout time.Duration
	onAck        AckFunc

	closed  atomic.Bool
	dropped atomic.Uint64
	sent    atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Dial connects to the backend at url (ws:// or wss://) and starts the
// pumps.
func Dial(ctx context.Context, url string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		queueSize:    DefaultQueueSize,
		writeTimeout: DefaultWriteTimeout,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	dialer := websocket.Dialer{HandshakeTimeout: DefaultDialTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.send = make(chan Operation, c.queueSize)

	c.wg.Add(2)
	go c.writePump()
	go c.readPump()
	return c, nil
}

// Notify implements Notifier. A full queue or a closed client drops the
// operation; redelivery is the reconnect path's job, keyed by op id.
func (c *Client) Notify(op Operation) {
	if c.closed.Load() {
		c.dropped.Add(1)
		return
	}
	select {
	case c.send <- op:
	default:
		c.dropped.Add(1)
	}
}

// Close implements Notifier. Pending queued operations are abandoned.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)

		// A close frame lets the server distinguish shutdown from a
		// dropped connection.
		deadline := time.Now().Add(c.writeTimeout)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.conn.Close()
		c.wg.Wait()
	})
	return err
}

// Sent returns the number of operations written to the socket.
func (c *Client) Sent() uint64 { return c.sent.Load() }

// Dropped returns the number of operations discarded because the queue
// was full or the client closed.
func (c *Client) Dropped() uint64 { return c.dropped.Load() }

func (c *Client) writePump() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case op := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteJSON(op); err != nil {
				c.dropped.Add(1)
				continue
			}
			c.sent.Add(1)
		}
	}
}

func (c *Client) readPump() {
	defer c.wg.Done()
	for {
		var ack Ack
		if err := c.conn.ReadJSON(&ack); err != nil {
			return
		}
		if c.onAck != nil {
			c.onAck(ack)
		}
	}
}
