package protocol

import "errors"

// MessageSizeMax is the largest single message this client will ever send
// or accept, header included.
const MessageSizeMax = 1 << 20

var (
	// ErrInvalidHeaderChecksum means Header.ValidChecksum() failed.
	ErrInvalidHeaderChecksum = errors.New("protocol: invalid header checksum")
	// ErrInvalidBodyChecksum means Header.ValidChecksumBody() failed.
	ErrInvalidBodyChecksum = errors.New("protocol: invalid body checksum")
	// ErrMessageTooLarge means a declared or actual size exceeds MessageSizeMax.
	ErrMessageTooLarge = errors.New("protocol: message exceeds maximum size")
	// ErrUnexpectedReply means a reply's command was neither Reply nor
	// Eviction, the only two commands a client may receive in response to
	// a request.
	ErrUnexpectedReply = errors.New("protocol: unexpected reply command")
	// ErrInvalidSize means a decoded body was shorter than the fixed-size
	// record it was supposed to carry.
	ErrInvalidSize = errors.New("protocol: reply body shorter than declared record")
)

// Message is a fully framed wire message: a 256-byte header followed by its
// body. Finalize stamps both checksums in the correct order (body first,
// since the header checksum covers it); call it after every header field
// and the body are in their final state, and again after any later change.
type Message struct {
	Header *Header
	Body   []byte
}

// NewMessage allocates a zeroed header for the given body, with Size and
// Protocol pre-set.
func NewMessage(body []byte) *Message {
	h := &Header{}
	h.SetSize(uint32(HeaderSize + len(body)))
	h.setProtocol(ProtocolVersion)
	return &Message{Header: h, Body: body}
}

// Finalize stamps checksum_body then checksum, in that order, since the
// header checksum's input includes checksum_body.
func (m *Message) Finalize() {
	m.Header.SetChecksumBody(m.Body)
	m.Header.SetChecksum()
}

// Encode concatenates the header and body into a single wire buffer.
func (m *Message) Encode() []byte {
	buf := make([]byte, 0, HeaderSize+len(m.Body))
	buf = append(buf, m.Header.Bytes()...)
	buf = append(buf, m.Body...)
	return buf
}

// DecodeMessage splits a wire buffer into a Header and body and validates
// both checksums. buf must be at least HeaderSize bytes; the header's Size
// field determines the body length, which must not exceed len(buf) or
// MessageSizeMax.
func DecodeMessage(buf []byte) (*Message, error) {
	if len(buf) < HeaderSize {
		return nil, ErrInvalidHeader
	}
	h, err := NewHeaderFromBytes(buf[:HeaderSize])
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	size := h.Size()
	if size > MessageSizeMax {
		return nil, ErrMessageTooLarge
	}
	if int(size) > len(buf) {
		return nil, ErrInvalidHeader
	}
	body := buf[HeaderSize:size]
	if !h.ValidChecksum() {
		return nil, ErrInvalidHeaderChecksum
	}
	if !h.ValidChecksumBody(body) {
		return nil, ErrInvalidBodyChecksum
	}
	return &Message{Header: h, Body: body}, nil
}

// RequestBuilder assembles a Request message field by field, mirroring the
// server's expected overlay layout, and stamps both checksums on Build.
type RequestBuilder struct {
	msg     *Message
	overlay RequestOverlay
}

// commandRequest is the wire value of types.CommandRequest. Duplicated
// here (rather than importing the types package) to keep protocol, the
// lower wire-framing layer, free of a dependency on the higher-level
// public record types.
const commandRequest = 5

// NewRequestBuilder starts building a Request message with the given body.
func NewRequestBuilder(body []byte) *RequestBuilder {
	m := NewMessage(body)
	m.Header.SetCommand(commandRequest)
	return &RequestBuilder{msg: m, overlay: m.Header.AsRequest()}
}

func (b *RequestBuilder) Cluster(v [16]byte) *RequestBuilder {
	b.msg.Header.SetCluster(v)
	return b
}

func (b *RequestBuilder) Parent(v [16]byte) *RequestBuilder {
	b.overlay.SetParent(v)
	return b
}

func (b *RequestBuilder) Client(v [16]byte) *RequestBuilder {
	b.overlay.SetClient(v)
	return b
}

func (b *RequestBuilder) Session(v uint64) *RequestBuilder {
	b.overlay.SetSession(v)
	return b
}

func (b *RequestBuilder) Request(v uint32) *RequestBuilder {
	b.overlay.SetRequest(v)
	return b
}

func (b *RequestBuilder) Operation(v uint8) *RequestBuilder {
	b.overlay.SetOperation(v)
	return b
}

func (b *RequestBuilder) Release(v uint32) *RequestBuilder {
	b.msg.Header.SetRelease(v)
	return b
}

func (b *RequestBuilder) View(v uint32) *RequestBuilder {
	b.msg.Header.SetView(v)
	return b
}

// Build finalizes checksums and returns the completed message.
func (b *RequestBuilder) Build() *Message {
	b.msg.Finalize()
	return b.msg
}
