package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrailerTotalSizeAlignment(t *testing.T) {
	require.Equal(t, 8, TrailerTotalSize(8, 1))
	require.Equal(t, 8, TrailerTotalSize(8, 3))
	require.Equal(t, 2*1+2, TrailerTotalSize(0, 1))
}

func TestMultiBatchRoundTrip(t *testing.T) {
	for _, elementSize := range []int{8, 16, 64, 128} {
		for _, counts := range [][]int{{0}, {1}, {2}, {64}, {2, 0, 3}} {
			var total int
			for _, c := range counts {
				total += c
			}
			data := make([]byte, total*elementSize)
			for i := range data {
				data[i] = byte(i)
			}
			encoded, err := EncodeMultiBatch(data, elementSize, counts)
			require.NoError(t, err)

			decoded, err := DecodeMultiBatch(encoded, elementSize)
			require.NoError(t, err)
			require.Len(t, decoded, len(counts))
			for i, c := range counts {
				require.Len(t, decoded[i], c*elementSize)
			}
		}
	}
}

func TestMultiBatchEmptyIsNotAnError(t *testing.T) {
	encoded, err := EncodeMultiBatch(nil, 8, nil)
	require.NoError(t, err)
	decoded, err := DecodeMultiBatch(encoded, 8)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestMultiBatchRejectsTruncatedTrailer(t *testing.T) {
	_, err := DecodeMultiBatch([]byte{0x01}, 8)
	require.ErrorIs(t, err, ErrInvalidTrailer)
}

func TestDecodeSingleBatchPayloadRoundTrip(t *testing.T) {
	const elementSize = 8
	data := make([]byte, 3*elementSize)
	for i := range data {
		data[i] = byte(i)
	}
	encoded, err := EncodeMultiBatch(data, elementSize, []int{3})
	require.NoError(t, err)
	require.Equal(t, data, DecodeSingleBatchPayload(encoded, elementSize))
}

func TestDecodeSingleBatchPayloadOnTruncatedTrailerIsEmpty(t *testing.T) {
	require.Nil(t, DecodeSingleBatchPayload([]byte{0x01}, 8))
	require.Nil(t, DecodeSingleBatchPayload(nil, 8))
}

func TestMultiBatchLargeElementCount(t *testing.T) {
	const elementSize = 8
	const count = 8189
	data := make([]byte, count*elementSize)
	encoded, err := EncodeMultiBatch(data, elementSize, []int{count})
	require.NoError(t, err)
	decoded, err := DecodeMultiBatch(encoded, elementSize)
	require.NoError(t, err)
	require.Len(t, decoded[0], count*elementSize)
}
