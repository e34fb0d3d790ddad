package ledgerclient

import (
	"errors"
	"fmt"

	"ledgerclient/internal/protocol"
	"ledgerclient/types"
)

// ProtocolError classifies a wire-level defect detected while parsing a
// header or body. It wraps the lower-level protocol sentinel so callers
// can errors.Is against either this type or the protocol package's own
// errors.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("protocol error: %v", e.Err) }
func (e *ProtocolError) Unwrap() error { return e.Err }

// EvictionError reports that the cluster terminated the client's session
// and why. No retry can recover from this; the client must be rebuilt.
type EvictionError struct {
	Reason types.EvictionReason
}

func (e *EvictionError) Error() string {
	return fmt.Sprintf("client evicted: %s", e.Reason.String())
}

// ConnectionError wraps a transport-level failure (dial, read, write).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("connection error: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// RequestTooLargeError reports that a request body exceeds the server's
// advertised batch size limit.
type RequestTooLargeError struct {
	Size, Limit int
}

func (e *RequestTooLargeError) Error() string {
	return fmt.Sprintf("request size %d exceeds batch size limit %d", e.Size, e.Limit)
}

var (
	// ErrTimeout means one attempt's per-attempt timeout elapsed without a
	// matching reply. sendWithRetry handles it by resending with a longer
	// timeout, so operation methods do not return it.
	ErrTimeout = errors.New("ledgerclient: request timed out")
	// ErrNotRegistered means a request was attempted before registration
	// completed (internal misuse; Client never returns this externally
	// once Connect has succeeded).
	ErrNotRegistered = errors.New("ledgerclient: session not registered")
	// ErrShutdown means the client was closed and can no longer send.
	ErrShutdown = errors.New("ledgerclient: client is shut down")
	// ErrInvalidOperation means the caller invoked an operation the
	// client does not recognize.
	ErrInvalidOperation = errors.New("ledgerclient: invalid operation")
)

func wrapProtocolErr(err error) error {
	if err == nil {
		return nil
	}
	return &ProtocolError{Err: err}
}

// isRecoverableProtocolErr reports whether err is a wire-level defect in a
// received frame (invalid header, header checksum or body checksum) rather
// than a transport failure. waitForReply drops the connection and returns
// such errors to the caller as a ProtocolError instead of a ConnectionError.
func isRecoverableProtocolErr(err error) bool {
	return errors.Is(err, protocol.ErrInvalidHeaderChecksum) ||
		errors.Is(err, protocol.ErrInvalidBodyChecksum) ||
		errors.Is(err, protocol.ErrInvalidHeader)
}
