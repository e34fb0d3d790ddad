// Package types defines the public wire-format records exchanged with a
// ledger cluster: accounts, transfers, filters, results, the registration
// handshake body, and the VSR command/operation enumerations. Field order
// and byte sizes match the server's on-wire layout exactly.
package types

import "encoding/binary"

// Uint128 is a 128-bit unsigned integer stored as 16 little-endian bytes,
// Go's analogue of the wire protocol's u128 fields (checksums, cluster and
// client identifiers, account/transfer ids, amounts).
type Uint128 [16]byte

// Uint128FromUint64 builds a Uint128 whose low 64 bits are v and whose high
// 64 bits are zero.
func Uint128FromUint64(v uint64) Uint128 {
	var u Uint128
	binary.LittleEndian.PutUint64(u[0:8], v)
	return u
}

// Uint128FromParts builds a Uint128 from explicit low/high 64-bit words.
func Uint128FromParts(lo, hi uint64) Uint128 {
	var u Uint128
	binary.LittleEndian.PutUint64(u[0:8], lo)
	binary.LittleEndian.PutUint64(u[8:16], hi)
	return u
}

// Parts returns the low and high 64-bit words.
func (u Uint128) Parts() (lo, hi uint64) {
	return binary.LittleEndian.Uint64(u[0:8]), binary.LittleEndian.Uint64(u[8:16])
}

// IsZero reports whether all 16 bytes are zero.
func (u Uint128) IsZero() bool {
	return u == Uint128{}
}

// IsMax reports whether the value equals 2^128 - 1.
func (u Uint128) IsMax() bool {
	for _, b := range u {
		if b != 0xff {
			return false
		}
	}
	return true
}
