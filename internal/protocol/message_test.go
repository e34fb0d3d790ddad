package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageEncodeDecodeRoundTrip(t *testing.T) {
	body := make([]byte, 128)
	for i := range body {
		body[i] = byte(i)
	}
	msg := NewRequestBuilder(body).
		Cluster([16]byte{9}).
		Client([16]byte{1}).
		Session(7).
		Request(1).
		Operation(138).
		Build()

	buf := msg.Encode()
	require.Len(t, buf, HeaderSize+len(body))

	decoded, err := DecodeMessage(buf)
	require.NoError(t, err)
	require.Equal(t, body, decoded.Body)
	require.EqualValues(t, 7, decoded.Header.AsRequest().Session())
}

func TestDecodeMessageRejectsCorruptBody(t *testing.T) {
	msg := NewRequestBuilder([]byte("payload")).Build()
	buf := msg.Encode()
	buf[len(buf)-1] ^= 0xff

	_, err := DecodeMessage(buf)
	require.ErrorIs(t, err, ErrInvalidBodyChecksum)
}

func TestDecodeMessageRejectsTruncatedHeader(t *testing.T) {
	_, err := DecodeMessage(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestDecodeMessageRejectsOversizeDeclaration(t *testing.T) {
	msg := NewRequestBuilder(nil).Build()
	msg.Header.SetSize(MessageSizeMax + 1)
	msg.Header.SetChecksum()
	buf := msg.Encode()

	_, err := DecodeMessage(buf)
	require.ErrorIs(t, err, ErrMessageTooLarge)
}
