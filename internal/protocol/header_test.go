package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderChecksumRoundTrip(t *testing.T) {
	body := []byte("hello ledger")
	h := &Header{}
	h.SetSize(uint32(HeaderSize + len(body)))
	h.setProtocol(ProtocolVersion)
	h.SetCommand(5)
	h.SetChecksumBody(body)
	h.SetChecksum()

	require.True(t, h.ValidChecksumBody(body))
	require.True(t, h.ValidChecksum())
	require.NoError(t, h.Validate())
}

func TestHeaderValidateRejectsBadProtocol(t *testing.T) {
	h := &Header{}
	h.SetSize(HeaderSize)
	h.setProtocol(99)
	require.ErrorIs(t, h.Validate(), ErrInvalidHeader)
}

func TestHeaderValidateRejectsUndersize(t *testing.T) {
	h := &Header{}
	h.SetSize(HeaderSize - 1)
	require.ErrorIs(t, h.Validate(), ErrInvalidHeader)
}

func TestRequestOverlayFields(t *testing.T) {
	h := &Header{}
	ov := h.AsRequest()
	ov.SetSession(7)
	ov.SetRequest(3)
	ov.SetOperation(138)

	ov2 := h.AsRequest()
	require.EqualValues(t, 7, ov2.Session())
	require.EqualValues(t, 3, ov2.Request())
	require.EqualValues(t, 138, ov2.Operation())
}

func TestReplyOverlayFields(t *testing.T) {
	h := &Header{}
	ov := h.AsReply()
	ov.SetContext([16]byte{1, 2, 3})

	ov2 := h.AsReply()
	require.Equal(t, [16]byte{1, 2, 3}, ov2.Context())
}
