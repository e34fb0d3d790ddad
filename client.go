// Package ledgerclient is a native Go client for a replicated ledger
// cluster: accounts, transfers, and their query operations, over a
// checksummed binary protocol with hedged sends and automatic retry.
package ledgerclient

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ledgerclient/internal/logger"
	"ledgerclient/internal/protocol"
	"ledgerclient/internal/transport"
	"ledgerclient/types"
)

type clientState int

const (
	stateDisconnected clientState = iota
	stateRegistering
	stateReady
	stateShutdown
)

// Client is a session against one ledger cluster. A Client is not safe for
// concurrent operations: its mutex guards only reads and writes of the
// session fields, not a whole request, so two operations issued at once
// would share a request number and parent. Drive each Client from one
// goroutine at a time, matching the one-in-flight-request-per-session model
// the server expects.
type Client struct {
	mu sync.Mutex

	id      types.Uint128
	cluster types.Uint128
	driver  *transport.Driver
	state   clientState

	session        uint64
	requestNumber  uint32
	parent         [16]byte
	view           uint32
	batchSizeLimit uint32

	requestTimeout    time.Duration
	requestTimeoutMax time.Duration

	bufferPool *transport.BufferPool
}

func (c *Client) connect(ctx context.Context) error {
	c.mu.Lock()
	c.state = stateRegistering
	c.mu.Unlock()

	for replica := 0; replica < c.driver.ReplicaCount(); replica++ {
		if err := c.driver.Connect(ctx, replica); err != nil {
			logger.Warnf("ledgerclient: connect to replica %d failed: %v", replica, err)
		}
	}

	if err := c.register(ctx); err != nil {
		c.mu.Lock()
		c.state = stateDisconnected
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.state = stateReady
	c.mu.Unlock()
	return nil
}

// register performs the handshake: a zero-filled RegisterRequest body with
// session=0, request=0, parent=0, operation=Register, release=1. On success
// the reply's context becomes the hash chain's parent for the first request.
func (c *Client) register(ctx context.Context) error {
	body := types.RegisterRequest{}.MarshalBinary()

	builder := protocol.NewRequestBuilder(body).
		Cluster(c.cluster).
		Client(c.id).
		Session(0).
		Request(0).
		Operation(byte(types.OperationRegister)).
		Release(1)
	msg := builder.Build()

	msg.Header.AsRequest().SetParent([16]byte{})
	msg.Header.SetChecksumBody(msg.Body)
	msg.Header.SetChecksum()

	reply, err := c.sendWithRetry(ctx, msg)
	if err != nil {
		return err
	}

	replyOverlay := reply.Header.AsReply()
	if len(reply.Body) < types.RegisterResultSize {
		return wrapProtocolErr(protocol.ErrInvalidSize)
	}
	result := types.UnmarshalRegisterResult(reply.Body)

	c.mu.Lock()
	c.session = replyOverlay.Commit()
	c.parent = replyOverlay.Context()
	c.requestNumber = 1
	c.batchSizeLimit = result.BatchSizeLimit
	c.view = reply.Header.View()
	c.mu.Unlock()
	return nil
}

// request sends one application request (already multi-batch-encoded body
// if the operation requires it) and returns the raw reply body.
func (c *Client) request(ctx context.Context, operation types.Operation, body []byte) ([]byte, error) {
	c.mu.Lock()
	switch c.state {
	case stateShutdown:
		c.mu.Unlock()
		return nil, ErrShutdown
	case stateReady:
		// fall through
	default:
		c.mu.Unlock()
		return nil, ErrNotRegistered
	}
	if c.batchSizeLimit > 0 && len(body) > int(c.batchSizeLimit) {
		limit := int(c.batchSizeLimit)
		c.mu.Unlock()
		return nil, &RequestTooLargeError{Size: len(body), Limit: limit}
	}
	session := c.session
	reqNum := c.requestNumber
	parent := c.parent
	c.mu.Unlock()

	builder := protocol.NewRequestBuilder(body).
		Cluster(c.cluster).
		Client(c.id).
		Session(session).
		Request(reqNum).
		Operation(byte(operation)).
		Release(1)
	msg := builder.Build()
	msg.Header.AsRequest().SetParent(parent)
	// Parent covers the final header state, so checksums are stamped
	// after every field (including Parent) is set.
	msg.Header.SetChecksumBody(msg.Body)
	msg.Header.SetChecksum()

	// The hash chain advances on send, not on ack: the request number and
	// parent move past this request before it is sent, and retries inside
	// sendWithRetry resend these identical bytes without advancing it again.
	c.mu.Lock()
	c.requestNumber = reqNum + 1
	c.parent = msg.Header.Checksum()
	c.mu.Unlock()

	reply, err := c.sendWithRetry(ctx, msg)
	if err != nil {
		return nil, err
	}

	replyOverlay := reply.Header.AsReply()
	c.mu.Lock()
	c.parent = replyOverlay.Context()
	if replyView := reply.Header.View(); replyView > c.view {
		c.view = replyView
	}
	c.mu.Unlock()

	return reply.Body, nil
}

// sendWithRetry drives the timeout/backoff loop: send with hedging, then
// wait on the primary only (the backup is fire-and-forget, matching the
// source — the server never replies from a non-primary replica). On
// timeout it doubles the request timeout (capped) with jitter and resends
// the identical bytes, matching replies by request_checksum so a late
// reply from an earlier attempt is discarded rather than misapplied.
func (c *Client) sendWithRetry(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	backoff := transport.NewBackoff(c.requestTimeout, c.requestTimeoutMax)
	expectedChecksum := msg.Header.Checksum()
	wire := msg.Encode()

	for {
		timeout := backoff.Next()

		c.mu.Lock()
		view := c.view
		replicaCount := c.driver.ReplicaCount()
		c.mu.Unlock()
		primary := int(view) % replicaCount

		if err := c.ensureConnected(ctx, primary); err != nil {
			return nil, &ConnectionError{Err: err}
		}
		if err := c.driver.Send(primary, wire); err != nil {
			return nil, &ConnectionError{Err: err}
		}
		if replicaCount > 1 {
			backup := randOtherReplica(primary, replicaCount)
			if err := c.ensureConnected(ctx, backup); err == nil {
				_ = c.driver.Send(backup, wire) // best effort; ignored on failure
			}
		}

		reply, err := c.waitForReply(ctx, primary, expectedChecksum, timeout)
		if err == nil {
			return reply, nil
		}
		if err == ErrTimeout {
			continue // doubled backoff, identical bytes, next loop iteration
		}
		return nil, err
	}
}

// waitForReply reads replies from the primary replica until one matches
// expectedChecksum and the client id, an Eviction arrives, the per-attempt
// timeout elapses, or a genuine protocol/connection error occurs. A
// mismatched (stale or unrelated) reply is recoverable: discarded, and the
// wait continues rather than failing the attempt.
func (c *Client) waitForReply(ctx context.Context, replica int, expectedChecksum [16]byte, timeout time.Duration) (*protocol.Message, error) {
	deadline := time.Now().Add(timeout)

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, ErrTimeout
		}

		buf := c.bufferPool.Acquire()
		msg, err := c.driver.RecvInto(replica, buf, deadline)
		if err != nil {
			if transport.IsTimeout(err) {
				c.bufferPool.Release(buf)
				return nil, ErrTimeout
			}
			// A read abandoned out from under the caller's own
			// cancellation (rather than our own deadline expiring)
			// may still land in the buffer later; quarantine it.
			if ctx.Err() != nil {
				buf.Poison()
			}
			c.bufferPool.Release(buf)
			_ = c.driver.Disconnect(replica)
			if isRecoverableProtocolErr(err) {
				// A corrupt frame desynchronizes the byte stream; there is
				// no resyncing a TCP stream mid-frame, so this is fatal to
				// the connection even though the defect itself was transient.
				return nil, wrapProtocolErr(err)
			}
			return nil, &ConnectionError{Err: err}
		}
		c.bufferPool.Release(buf)

		switch msg.Header.Command() {
		case byte(types.CommandEviction):
			overlay := msg.Header.AsEviction()
			reason, ok := types.ParseEvictionReason(overlay.Reason())
			if !ok {
				reason = types.EvictionNoSession
			}
			return nil, &EvictionError{Reason: reason}
		case byte(types.CommandReply):
			overlay := msg.Header.AsReply()
			if overlay.RequestChecksum() != expectedChecksum || overlay.Client() != [16]byte(c.id) {
				continue // stale or unrelated reply from a prior attempt
			}
			return msg, nil
		default:
			_ = c.driver.Disconnect(replica)
			return nil, wrapProtocolErr(protocol.ErrUnexpectedReply)
		}
	}
}

func randOtherReplica(primary, count int) int {
	if count <= 1 {
		return primary
	}
	for {
		r := rand.Intn(count)
		if r != primary {
			return r
		}
	}
}

func (c *Client) ensureConnected(ctx context.Context, replica int) error {
	if c.driver.IsConnected(replica) {
		return nil
	}
	return c.driver.Connect(ctx, replica)
}

// Close shuts the client down: further requests return ErrShutdown, and
// any poisoned (cancelled in-flight) buffers are released for reuse since
// no outstanding I/O can land against them once every connection is shut.
func (c *Client) Close() error {
	c.mu.Lock()
	c.state = stateShutdown
	c.mu.Unlock()
	c.driver.Close()
	c.bufferPool.ClearQuarantine()
	return nil
}

// BatchSizeLimit returns the server-advertised maximum request body size
// in bytes, discovered during registration.
func (c *Client) BatchSizeLimit() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batchSizeLimit
}

// MaxBatchCount returns how many fixed-size elements of elementSize bytes
// fit within the server's advertised batch size limit, accounting for the
// multi-batch trailer a single-batch request of that many elements would
// carry. Mirrors the reference client's generic max_batch_count<T> helper,
// specialized here on an explicit element size since Go has no sizeof.
func (c *Client) MaxBatchCount(elementSize int) int {
	limit := int(c.BatchSizeLimit())
	if elementSize <= 0 || limit <= 0 {
		return 0
	}
	for count := limit / elementSize; count > 0; count-- {
		if count*elementSize+protocol.TrailerTotalSize(elementSize, 1) <= limit {
			return count
		}
	}
	return 0
}
