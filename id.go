package ledgerclient

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"ledgerclient/types"
)

// NewID generates a client identifier with the same shape the server
// expects for any id field the caller doesn't supply: the high 64 bits
// are the current unix time in nanoseconds, the low 64 bits are random,
// and the all-zero value is rejected by redrawing randomness (it collides
// with the sentinel the protocol treats as "unset").
func NewID() types.Uint128 {
	for {
		var lo [8]byte
		if _, err := rand.Read(lo[:]); err != nil {
			panic("ledgerclient: failed to read random bytes: " + err.Error())
		}
		hi := uint64(time.Now().UnixNano())
		id := types.Uint128FromParts(binary.LittleEndian.Uint64(lo[:]), hi)
		if !id.IsZero() {
			return id
		}
	}
}
