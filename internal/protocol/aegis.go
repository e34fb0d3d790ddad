// Package protocol implements the ledger wire protocol: the AEGIS-128L
// checksum primitive, the fixed 256-byte header and its command overlays,
// message framing, and the multi-batch trailer codec.
package protocol

import "encoding/binary"

// aegisState is the 8x128-bit AEGIS-128L state.
type aegisState [8][16]byte

var aegisConst0 = [16]byte{
	0x00, 0x01, 0x01, 0x02, 0x03, 0x05, 0x08, 0x0d,
	0x15, 0x22, 0x37, 0x59, 0x90, 0xe9, 0x79, 0x62,
}

var aegisConst1 = [16]byte{
	0xdb, 0x3d, 0x18, 0x55, 0x6d, 0xc2, 0x2f, 0xf1,
	0x20, 0x11, 0x31, 0x42, 0x73, 0xb5, 0x28, 0xdd,
}

func xor16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// aesRound computes one AES encryption round (SubBytes, ShiftRows,
// MixColumns) over in, then XORs roundKey — the same semantics as the
// x86 AESENC instruction, which AEGIS is built on.
func aesRound(in, roundKey [16]byte) [16]byte {
	s := subBytes(in)
	s = shiftRows(s)
	s = mixColumns(s)
	return xor16(s, roundKey)
}

func subBytes(in [16]byte) [16]byte {
	var out [16]byte
	for i, b := range in {
		out[i] = aesSbox[b]
	}
	return out
}

// shiftRows operates on the standard column-major AES state where byte i
// is row i%4, column i/4.
func shiftRows(in [16]byte) [16]byte {
	var out [16]byte
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r+4*c] = in[r+4*((c+r)%4)]
		}
	}
	return out
}

func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func mixColumns(in [16]byte) [16]byte {
	var out [16]byte
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := in[4*c], in[4*c+1], in[4*c+2], in[4*c+3]
		out[4*c+0] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		out[4*c+1] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		out[4*c+2] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		out[4*c+3] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
	return out
}

// update performs one AEGIS-128L state update absorbing the two 128-bit
// blocks m0, m1.
func (s *aegisState) update(m0, m1 [16]byte) {
	next := aegisState{
		aesRound(s[7], xor16(s[0], m0)),
		aesRound(s[0], s[1]),
		aesRound(s[1], s[2]),
		aesRound(s[2], s[3]),
		aesRound(s[3], xor16(s[4], m1)),
		aesRound(s[4], s[5]),
		aesRound(s[5], s[6]),
		aesRound(s[6], s[7]),
	}
	*s = next
}

func aegisInit(key, nonce [16]byte) aegisState {
	kn := xor16(key, nonce)
	s := aegisState{
		kn,
		aegisConst1,
		aegisConst0,
		aegisConst1,
		kn,
		xor16(key, aegisConst0),
		xor16(key, aegisConst1),
		xor16(key, aegisConst0),
	}
	for i := 0; i < 10; i++ {
		s.update(nonce, key)
	}
	return s
}

func finalizeTag(s *aegisState, adLenBits, msgLenBits uint64) [16]byte {
	var lenBlock [16]byte
	binary.LittleEndian.PutUint64(lenBlock[0:8], adLenBits)
	binary.LittleEndian.PutUint64(lenBlock[8:16], msgLenBits)

	tmp := xor16(s[2], lenBlock)
	for i := 0; i < 7; i++ {
		s.update(tmp, tmp)
	}

	tag := s[0]
	tag = xor16(tag, s[1])
	tag = xor16(tag, s[2])
	tag = xor16(tag, s[3])
	tag = xor16(tag, s[4])
	tag = xor16(tag, s[5])
	tag = xor16(tag, s[6])
	return tag
}

// Checksum computes the TigerBeetle-style checksum of data: the AEGIS-128L
// authentication tag with a zero key/nonce, data as associated data, an
// empty message, interpreted little-endian as a 128-bit integer. Checksum
// of an empty slice always equals 0x49F174618255402DE6E7E3C40D60CC83.
func Checksum(data []byte) [16]byte {
	var zero [16]byte
	s := aegisInit(zero, zero)

	remaining := data
	for len(remaining) >= 32 {
		var b0, b1 [16]byte
		copy(b0[:], remaining[0:16])
		copy(b1[:], remaining[16:32])
		s.update(b0, b1)
		remaining = remaining[32:]
	}
	if len(remaining) > 0 {
		var padded [32]byte
		copy(padded[:], remaining)
		var b0, b1 [16]byte
		copy(b0[:], padded[0:16])
		copy(b1[:], padded[16:32])
		s.update(b0, b1)
	}

	return finalizeTag(&s, uint64(len(data))*8, 0)
}

// ChecksumU128LE returns the checksum as a little-endian 128-bit value
// split into low and high 64-bit words (low = bytes 0..8, high = bytes
// 8..16), since Go has no native u128 type.
func ChecksumU128LE(data []byte) (lo, hi uint64) {
	tag := Checksum(data)
	lo = binary.LittleEndian.Uint64(tag[0:8])
	hi = binary.LittleEndian.Uint64(tag[8:16])
	return lo, hi
}
