package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDoublesUpToMax(t *testing.T) {
	b := NewBackoff(500*time.Millisecond, 2*time.Second)

	first := b.Next()
	require.GreaterOrEqual(t, first, 500*time.Millisecond)
	require.Less(t, first, 500*time.Millisecond+500*time.Millisecond/4)

	second := b.Next()
	require.GreaterOrEqual(t, second, 1*time.Second)

	third := b.Next()
	require.GreaterOrEqual(t, third, 2*time.Second)
	require.Less(t, third, 2*time.Second+2*time.Second/4)

	fourth := b.Next()
	require.GreaterOrEqual(t, fourth, 2*time.Second)
}

func TestBackoffReset(t *testing.T) {
	b := NewBackoff(500*time.Millisecond, 30*time.Second)
	b.Next()
	b.Next()
	b.Reset(500 * time.Millisecond)
	got := b.Next()
	require.Less(t, got, 1*time.Second)
}
