package ledgerclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNewIDUniqueAndMonotonic checks 1000 consecutive ids: every id is
// non-zero, the ids are pairwise distinct, and their high 64 bits (the
// embedded timestamp) never decrease from one id to the next.
func TestNewIDUniqueAndMonotonic(t *testing.T) {
	seen := make(map[[16]byte]bool, 1000)
	var prevHi uint64
	var havePrev bool

	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, id.IsZero(), "id %d must not be zero", i)

		raw := [16]byte(id)
		require.False(t, seen[raw], "id %d collided with a previous id", i)
		seen[raw] = true

		_, hi := id.Parts()
		if havePrev {
			require.GreaterOrEqual(t, hi, prevHi, "id %d's timestamp went backwards", i)
		}
		prevHi = hi
		havePrev = true
	}
}

// TestNewIDTimestampAdvancesAcrossSleep confirms the high 64 bits track
// wall-clock time closely enough that ids separated by a real sleep are
// strictly ordered, not just non-decreasing by chance.
func TestNewIDTimestampAdvancesAcrossSleep(t *testing.T) {
	first := NewID()
	time.Sleep(2 * time.Millisecond)
	second := NewID()

	_, hiFirst := first.Parts()
	_, hiSecond := second.Parts()
	require.Greater(t, hiSecond, hiFirst)
}
