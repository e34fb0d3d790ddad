package transport

import (
	"context"
	"strings"
	"time"

	"ledgerclient/internal/protocol"
)

// Driver owns one Connection per replica address and provides the
// primitives a session needs: connect/disconnect, raw send, and message-
// framed receive with cross-read accumulation (a short read does not
// surface a partial message to the caller; Recv blocks internally across
// as many socket reads as it takes to complete one frame).
type Driver struct {
	conns      []*Connection
	addresses  []string
	dialer     Dialer
	connectTO  time.Duration
	start      time.Time
}

// NewDriver builds a Driver over a comma-separated address list.
func NewDriver(addressList string, connectTimeout time.Duration) *Driver {
	addrs := strings.Split(addressList, ",")
	conns := make([]*Connection, len(addrs))
	for i, a := range addrs {
		conns[i] = NewConnection(strings.TrimSpace(a))
	}
	return &Driver{
		conns:     conns,
		addresses: addrs,
		dialer:    NewDefaultDialer(connectTimeout),
		connectTO: connectTimeout,
		start:     time.Now(),
	}
}

func (d *Driver) ReplicaCount() int { return len(d.conns) }

func (d *Driver) IsConnected(replica int) bool {
	return d.conns[replica].IsConnected()
}

func (d *Driver) Connect(ctx context.Context, replica int) error {
	ctx, cancel := context.WithTimeout(ctx, d.connectTO)
	defer cancel()
	return d.conns[replica].Connect(ctx, d.dialer)
}

func (d *Driver) Disconnect(replica int) error {
	return d.conns[replica].Close()
}

func (d *Driver) Send(replica int, buf []byte) error {
	return d.conns[replica].Send(buf)
}

// Recv reads one complete, checksum-valid message from replica, blocking
// across as many underlying socket reads as needed to accumulate a full
// frame (the header declares its own length once HeaderSize bytes are in
// hand). It never times out; callers that need a bound use RecvInto with a
// non-zero deadline.
func (d *Driver) Recv(replica int) (*protocol.Message, error) {
	buf := NewOwnedBuf(protocol.MessageSizeMax)
	return d.RecvInto(replica, buf, time.Time{})
}

// RecvInto reads one message from replica into the caller-owned buf,
// bounded by deadline (zero means no bound), and returns the decoded
// message. The body of the returned Message is an independent copy, so the
// caller may reset and reuse buf immediately afterward regardless of the
// outcome — callers that need the buffer-pool quarantine semantics decide
// for themselves, based on why the call failed, whether to poison buf
// before releasing it (see Client.waitForReply).
func (d *Driver) RecvInto(replica int, buf *OwnedBuf, deadline time.Time) (*protocol.Message, error) {
	conn := d.conns[replica]
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	defer conn.SetReadDeadline(time.Time{})

	scratch := buf.FullSlice()[:protocol.HeaderSize]
	if err := readFull(conn, scratch); err != nil {
		return nil, err
	}
	h, err := protocol.NewHeaderFromBytes(scratch)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	size := h.Size()
	if size > protocol.MessageSizeMax || int(size) > buf.Capacity() {
		return nil, protocol.ErrMessageTooLarge
	}

	full := buf.FullSlice()[:size]
	if remaining := full[protocol.HeaderSize:]; len(remaining) > 0 {
		if err := readFull(conn, remaining); err != nil {
			return nil, err
		}
	}

	// Copy out of the pooled buffer: the decoded Message's body must stay
	// valid after buf is reset and handed to a future Acquire.
	owned := make([]byte, len(full))
	copy(owned, full)
	return protocol.DecodeMessage(owned)
}

// IsTimeout reports whether err is a deadline expiry rather than a genuine
// connection failure.
func IsTimeout(err error) bool {
	ne, ok := err.(interface{ Timeout() bool })
	return ok && ne.Timeout()
}

func readFull(conn *Connection, buf []byte) error {
	read := 0
	for read < len(buf) {
		n, err := conn.Recv(buf[read:])
		if err != nil {
			return err
		}
		read += n
	}
	return nil
}

// NowNS returns nanoseconds elapsed since the driver was constructed, read
// from the monotonic clock.
func (d *Driver) NowNS() uint64 {
	return uint64(time.Since(d.start).Nanoseconds())
}

func (d *Driver) Close() {
	for _, c := range d.conns {
		_ = c.Close()
	}
}
