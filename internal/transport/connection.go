package transport

import (
	"context"
	"net"
	"sync"
	"time"

	"ledgerclient/internal/logger"
)

// ConnectionState tracks the lifecycle of a single replica connection.
type ConnectionState int

const (
	ConnectionDisconnected ConnectionState = iota
	ConnectionConnecting
	ConnectionConnected
)

// Connection wraps one TCP connection to one replica. It is safe to read
// its state from multiple goroutines but send/recv are expected to be
// driven by the owning Driver only.
type Connection struct {
	mu    sync.Mutex
	conn  net.Conn
	addr  string
	state ConnectionState
}

func NewConnection(addr string) *Connection {
	return &Connection{addr: addr, state: ConnectionDisconnected}
}

// Connect dials addr and enables TCP_NODELAY so small request/reply frames
// are not held back by Nagle's algorithm.
func (c *Connection) Connect(ctx context.Context, dialer Dialer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = ConnectionConnecting
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		c.state = ConnectionDisconnected
		return err
	}
	setNoDelay(conn)
	c.conn = conn
	c.state = ConnectionConnected
	logger.Debugf("transport: connected to %s", c.addr)
	return nil
}

func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == ConnectionConnected
}

func (c *Connection) Send(buf []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return net.ErrClosed
	}
	_, err := conn.Write(buf)
	return err
}

// Recv reads up to len(buf) bytes, returning the number read. Callers
// accumulate across multiple Recv calls to reassemble a full message.
func (c *Connection) Recv(buf []byte) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return 0, net.ErrClosed
	}
	return conn.Read(buf)
}

// SetReadDeadline bounds the next Recv calls so a per-attempt timeout can
// interrupt an otherwise-blocking read. A zero Time clears the deadline.
func (c *Connection) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return net.ErrClosed
	}
	return conn.SetReadDeadline(t)
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ConnectionDisconnected
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
