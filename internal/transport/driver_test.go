package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ledgerclient/internal/protocol"
)

func TestDriverSendRecvRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	msg := protocol.NewRequestBuilder([]byte("payload")).Build()
	wire := msg.Encode()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// Write in two halves to exercise cross-read accumulation.
		conn.Write(wire[:100])
		time.Sleep(10 * time.Millisecond)
		conn.Write(wire[100:])
	}()

	d := NewDriver(ln.Addr().String(), time.Second)
	require.NoError(t, d.Connect(context.Background(), 0))
	defer d.Close()

	got, err := d.Recv(0)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got.Body)

	<-serverDone
}

func TestDriverNowNSMonotonic(t *testing.T) {
	d := &Driver{start: time.Now()}
	a := d.NowNS()
	time.Sleep(time.Millisecond)
	b := d.NowNS()
	require.Greater(t, b, a)
}
