package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPoolReusesReleasedBuffer(t *testing.T) {
	p := NewBufferPool(64)
	a := p.Acquire()
	a.SetLen(10)
	p.Release(a)

	b := p.Acquire()
	require.Equal(t, 0, b.Len(), "released buffer must come back reset")
	require.Same(t, a, b)
}

func TestBufferPoolQuarantinesPoisonedBuffer(t *testing.T) {
	p := NewBufferPool(64)
	a := p.Acquire()
	a.Poison()
	p.Release(a)

	require.Equal(t, 1, p.QuarantineLen())
	fresh := p.Acquire()
	require.NotSame(t, a, fresh, "a poisoned buffer must not be handed out again")

	p.ClearQuarantine()
	require.Equal(t, 0, p.QuarantineLen())
}

func TestOwnedBufSetLenPanicsBeyondCapacity(t *testing.T) {
	b := NewOwnedBuf(4)
	require.Panics(t, func() { b.SetLen(5) })
}
