package protocol

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed size in bytes of every wire message header.
const HeaderSize = 256

// ProtocolVersion is the only wire protocol version this client speaks.
const ProtocolVersion = 0

// overlaySize is the size in bytes of the per-command region starting at
// byte offset 128 within the header.
const overlaySize = 128

// ErrInvalidHeader is returned by Header.Validate for structural defects
// that are not specifically a checksum mismatch.
var ErrInvalidHeader = errors.New("protocol: invalid header")

// Header is the 256-byte frame header preceding every message's body.
// Field offsets match the wire layout exactly:
//
//	 0  checksum            u128
//	16  checksum_padding    u128 (must be zero)
//	32  checksum_body       u128
//	48  checksum_body_padding u128 (must be zero)
//	64  nonce_reserved      u128 (must be zero)
//	80  cluster             u128
//	96  size                u32
// 100  epoch               u32 (must be zero)
// 104  view                u32
// 108  release              u32
// 112  protocol            u16
// 114  command             u8
// 115  replica             u8
// 116  reserved_frame      [12]u8 (must be zero)
// 128  command overlay     [128]u8
type Header struct {
	raw [HeaderSize]byte
}

func (h *Header) Bytes() []byte { return h.raw[:] }

// NewHeaderFromBytes copies a 256-byte buffer into a new Header. buf must be
// exactly HeaderSize bytes; the Header does not refer to buf afterward.
func NewHeaderFromBytes(buf []byte) (*Header, error) {
	if len(buf) != HeaderSize {
		return nil, ErrInvalidHeader
	}
	h := &Header{}
	copy(h.raw[:], buf)
	return h, nil
}

func (h *Header) Checksum() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[0:16])
	return b
}

func (h *Header) setChecksum(v [16]byte) { copy(h.raw[0:16], v[:]) }

func (h *Header) checksumPadding() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[16:32])
	return b
}

func (h *Header) ChecksumBody() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[32:48])
	return b
}

func (h *Header) setChecksumBody(v [16]byte) { copy(h.raw[32:48], v[:]) }

func (h *Header) checksumBodyPadding() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[48:64])
	return b
}

func (h *Header) nonceReserved() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[64:80])
	return b
}

func (h *Header) Cluster() [16]byte {
	var b [16]byte
	copy(b[:], h.raw[80:96])
	return b
}
func (h *Header) SetCluster(v [16]byte) { copy(h.raw[80:96], v[:]) }

func (h *Header) Size() uint32     { return binary.LittleEndian.Uint32(h.raw[96:100]) }
func (h *Header) SetSize(v uint32) { binary.LittleEndian.PutUint32(h.raw[96:100], v) }

func (h *Header) epoch() uint32 { return binary.LittleEndian.Uint32(h.raw[100:104]) }

func (h *Header) View() uint32     { return binary.LittleEndian.Uint32(h.raw[104:108]) }
func (h *Header) SetView(v uint32) { binary.LittleEndian.PutUint32(h.raw[104:108], v) }

func (h *Header) Release() uint32     { return binary.LittleEndian.Uint32(h.raw[108:112]) }
func (h *Header) SetRelease(v uint32) { binary.LittleEndian.PutUint32(h.raw[108:112], v) }

func (h *Header) protocol() uint16     { return binary.LittleEndian.Uint16(h.raw[112:114]) }
func (h *Header) setProtocol(v uint16) { binary.LittleEndian.PutUint16(h.raw[112:114], v) }

func (h *Header) Command() uint8     { return h.raw[114] }
func (h *Header) SetCommand(v uint8) { h.raw[114] = v }

func (h *Header) Replica() uint8     { return h.raw[115] }
func (h *Header) SetReplica(v uint8) { h.raw[115] = v }

func (h *Header) reservedFrame() [12]byte {
	var b [12]byte
	copy(b[:], h.raw[116:128])
	return b
}

// Overlay returns the mutable 128-byte command-specific region.
func (h *Header) Overlay() []byte { return h.raw[128:256] }

// CalculateChecksumBody computes the checksum that should appear in the
// checksum_body field, covering the message body alone.
func (h *Header) CalculateChecksumBody(body []byte) [16]byte {
	return Checksum(body)
}

// SetChecksumBody writes the body checksum into the header.
func (h *Header) SetChecksumBody(body []byte) {
	h.setChecksumBody(h.CalculateChecksumBody(body))
}

// CalculateChecksum computes the checksum that should appear in the
// checksum field, covering everything in the header after the checksum
// field itself (bytes 16..256), which in turn covers checksum_body.
func (h *Header) CalculateChecksum() [16]byte {
	return Checksum(h.raw[16:HeaderSize])
}

// SetChecksum writes the header checksum. Call after SetChecksumBody and
// after every other header field has its final value.
func (h *Header) SetChecksum() {
	h.setChecksum(h.CalculateChecksum())
}

func (h *Header) ValidChecksumBody(body []byte) bool {
	return h.ChecksumBody() == h.CalculateChecksumBody(body)
}

func (h *Header) ValidChecksum() bool {
	return h.Checksum() == h.CalculateChecksum()
}

// Validate checks structural invariants that hold for every header
// regardless of command: reserved padding fields are zero, epoch is zero,
// size is at least HeaderSize, and protocol matches ProtocolVersion.
func (h *Header) Validate() error {
	var zero [16]byte
	if h.checksumPadding() != zero || h.checksumBodyPadding() != zero || h.nonceReserved() != zero {
		return ErrInvalidHeader
	}
	if h.epoch() != 0 {
		return ErrInvalidHeader
	}
	if h.Size() < HeaderSize {
		return ErrInvalidHeader
	}
	if h.protocol() != ProtocolVersion {
		return ErrInvalidHeader
	}
	var zero12 [12]byte
	if h.reservedFrame() != zero12 {
		return ErrInvalidHeader
	}
	return nil
}

// ---- Command overlays ----
//
// Each overlay is a typed view over Header.Overlay()'s 128 bytes, matching
// the server's per-command union exactly.

// RequestOverlay views the overlay region of a Request header.
type RequestOverlay struct{ o []byte }

func (h *Header) AsRequest() RequestOverlay { return RequestOverlay{h.Overlay()} }

func (r RequestOverlay) Parent() [16]byte {
	var b [16]byte
	copy(b[:], r.o[0:16])
	return b
}
func (r RequestOverlay) SetParent(v [16]byte) { copy(r.o[0:16], v[:]) }

func (r RequestOverlay) Client() [16]byte {
	var b [16]byte
	copy(b[:], r.o[32:48])
	return b
}
func (r RequestOverlay) SetClient(v [16]byte) { copy(r.o[32:48], v[:]) }

func (r RequestOverlay) Session() uint64     { return binary.LittleEndian.Uint64(r.o[48:56]) }
func (r RequestOverlay) SetSession(v uint64) { binary.LittleEndian.PutUint64(r.o[48:56], v) }

func (r RequestOverlay) Timestamp() uint64     { return binary.LittleEndian.Uint64(r.o[56:64]) }
func (r RequestOverlay) SetTimestamp(v uint64) { binary.LittleEndian.PutUint64(r.o[56:64], v) }

func (r RequestOverlay) Request() uint32     { return binary.LittleEndian.Uint32(r.o[64:68]) }
func (r RequestOverlay) SetRequest(v uint32) { binary.LittleEndian.PutUint32(r.o[64:68], v) }

func (r RequestOverlay) Operation() uint8     { return r.o[68] }
func (r RequestOverlay) SetOperation(v uint8) { r.o[68] = v }

func (r RequestOverlay) PreviousRequestLatency() uint32 {
	return binary.LittleEndian.Uint32(r.o[72:76])
}
func (r RequestOverlay) SetPreviousRequestLatency(v uint32) {
	binary.LittleEndian.PutUint32(r.o[72:76], v)
}

// ReplyOverlay views the overlay region of a Reply header.
type ReplyOverlay struct{ o []byte }

func (h *Header) AsReply() ReplyOverlay { return ReplyOverlay{h.Overlay()} }

func (r ReplyOverlay) RequestChecksum() [16]byte {
	var b [16]byte
	copy(b[:], r.o[0:16])
	return b
}
func (r ReplyOverlay) SetRequestChecksum(v [16]byte) { copy(r.o[0:16], v[:]) }

// Context bytes 32:48 are followed by a 16-byte context_padding (48:64),
// mirroring the request_checksum/request_checksum_padding pair at 0:32.
func (r ReplyOverlay) Context() [16]byte {
	var b [16]byte
	copy(b[:], r.o[32:48])
	return b
}
func (r ReplyOverlay) SetContext(v [16]byte) { copy(r.o[32:48], v[:]) }

func (r ReplyOverlay) Client() [16]byte {
	var b [16]byte
	copy(b[:], r.o[64:80])
	return b
}
func (r ReplyOverlay) SetClient(v [16]byte) { copy(r.o[64:80], v[:]) }

func (r ReplyOverlay) Op() uint64     { return binary.LittleEndian.Uint64(r.o[80:88]) }
func (r ReplyOverlay) SetOp(v uint64) { binary.LittleEndian.PutUint64(r.o[80:88], v) }

func (r ReplyOverlay) Commit() uint64     { return binary.LittleEndian.Uint64(r.o[88:96]) }
func (r ReplyOverlay) SetCommit(v uint64) { binary.LittleEndian.PutUint64(r.o[88:96], v) }
func (r ReplyOverlay) Timestamp() uint64 { return binary.LittleEndian.Uint64(r.o[96:104]) }
func (r ReplyOverlay) Request() uint32   { return binary.LittleEndian.Uint32(r.o[104:108]) }
func (r ReplyOverlay) Operation() uint8  { return r.o[108] }

// PingClientOverlay views the overlay region of a PingClient header.
type PingClientOverlay struct{ o []byte }

func (h *Header) AsPingClient() PingClientOverlay { return PingClientOverlay{h.Overlay()} }

func (p PingClientOverlay) Client() [16]byte {
	var b [16]byte
	copy(b[:], p.o[0:16])
	return b
}
func (p PingClientOverlay) SetClient(v [16]byte) { copy(p.o[0:16], v[:]) }

func (p PingClientOverlay) PingTimestampMonotonic() uint64 {
	return binary.LittleEndian.Uint64(p.o[16:24])
}
func (p PingClientOverlay) SetPingTimestampMonotonic(v uint64) {
	binary.LittleEndian.PutUint64(p.o[16:24], v)
}

// PongClientOverlay views the overlay region of a PongClient header.
type PongClientOverlay struct{ o []byte }

func (h *Header) AsPongClient() PongClientOverlay { return PongClientOverlay{h.Overlay()} }

func (p PongClientOverlay) PingTimestampMonotonic() uint64 {
	return binary.LittleEndian.Uint64(p.o[0:8])
}
func (p PongClientOverlay) PongTimestampWall() uint64 {
	return binary.LittleEndian.Uint64(p.o[8:16])
}

// EvictionOverlay views the overlay region of an Eviction header.
type EvictionOverlay struct{ o []byte }

func (h *Header) AsEviction() EvictionOverlay { return EvictionOverlay{h.Overlay()} }

func (e EvictionOverlay) Client() [16]byte {
	var b [16]byte
	copy(b[:], e.o[0:16])
	return b
}
func (e EvictionOverlay) Reason() uint8 { return e.o[overlaySize-1] }
