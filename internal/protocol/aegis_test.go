package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumEmptyVector(t *testing.T) {
	tag := Checksum(nil)
	// 0x49F174618255402DE6E7E3C40D60CC83 read little-endian.
	want := [16]byte{
		0x83, 0xcc, 0x60, 0x0d, 0xc4, 0xe3, 0xe7, 0xe6,
		0x2d, 0x40, 0x55, 0x82, 0x61, 0x74, 0xf1, 0x49,
	}
	require.Equal(t, want, tag)
}

func TestChecksumDistinctInputs(t *testing.T) {
	inputs := [][]byte{[]byte(""), []byte("hello"), []byte("Hello"), []byte("hello ")}
	seen := make(map[[16]byte]bool)
	for _, in := range inputs {
		tag := Checksum(in)
		require.False(t, seen[tag], "checksum collision for %q", in)
		seen[tag] = true
	}
}

func TestChecksumDeterministic(t *testing.T) {
	data := []byte("ledger client checksum determinism check spanning more than one 32-byte AEGIS block")
	require.Equal(t, Checksum(data), Checksum(data))
}
