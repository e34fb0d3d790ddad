package protocol

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidTrailer is returned when a multi-batch trailer is malformed:
// too short, misaligned, or declares a batch layout that does not fit the
// buffer it's attached to.
var ErrInvalidTrailer = errors.New("protocol: invalid multi-batch trailer")

// TrailerTotalSize computes the number of trailer bytes appended after
// batchCount batches' worth of elements, each elementSize bytes wide. The
// trailer itself is a batch_count u16 (last 2 bytes) preceded by one u16
// element_count per batch, preceded by 0xFF padding so the whole trailer
// is a multiple of elementSize (or exactly 2*batchCount+2 when elementSize
// is zero, i.e. there is no natural alignment to round to).
func TrailerTotalSize(elementSize, batchCount int) int {
	raw := 2*batchCount + 2
	if elementSize <= 0 {
		return raw
	}
	if raw%elementSize == 0 {
		return raw
	}
	return (raw/elementSize + 1) * elementSize
}

// EncodeMultiBatch appends the multi-batch trailer to a flat concatenation
// of fixed-size elements, given the element count of each logical batch.
// data must already hold sum(counts)*elementSize bytes; the result is a new
// buffer holding a copy of data followed by the trailer, and data itself is
// not modified.
func EncodeMultiBatch(data []byte, elementSize int, counts []int) ([]byte, error) {
	if elementSize <= 0 {
		return nil, ErrInvalidTrailer
	}
	var total int
	for _, c := range counts {
		total += c
	}
	if len(data) != total*elementSize {
		return nil, ErrInvalidTrailer
	}

	trailerSize := TrailerTotalSize(elementSize, len(counts))
	out := make([]byte, len(data)+trailerSize)
	copy(out, data)

	trailer := out[len(data):]
	for i := range trailer {
		trailer[i] = 0xff
	}
	// Per-batch element_count entries sit immediately before the final
	// batch_count, in batch order, each 2 bytes.
	countsOffset := trailerSize - 2 - 2*len(counts)
	for i, c := range counts {
		binary.LittleEndian.PutUint16(trailer[countsOffset+2*i:countsOffset+2*i+2], uint16(c))
	}
	binary.LittleEndian.PutUint16(trailer[trailerSize-2:trailerSize], uint16(len(counts)))
	return out, nil
}

// DecodeMultiBatch splits a buffer produced by EncodeMultiBatch back into
// its per-batch element slices. elementSize must match the value used at
// encode time.
func DecodeMultiBatch(data []byte, elementSize int) ([][]byte, error) {
	if elementSize <= 0 {
		return nil, ErrInvalidTrailer
	}
	if len(data) < 2 {
		return nil, ErrInvalidTrailer
	}
	batchCount := int(binary.LittleEndian.Uint16(data[len(data)-2:]))
	if batchCount == 0 {
		trailerSize := TrailerTotalSize(elementSize, 0)
		if len(data) < trailerSize {
			return nil, ErrInvalidTrailer
		}
		if len(data) != trailerSize {
			return nil, ErrInvalidTrailer
		}
		return nil, nil
	}

	trailerSize := TrailerTotalSize(elementSize, batchCount)
	if len(data) < trailerSize {
		return nil, ErrInvalidTrailer
	}
	trailer := data[len(data)-trailerSize:]
	countsOffset := trailerSize - 2 - 2*batchCount
	if countsOffset < 0 {
		return nil, ErrInvalidTrailer
	}

	counts := make([]int, batchCount)
	var total int
	for i := 0; i < batchCount; i++ {
		c := int(binary.LittleEndian.Uint16(trailer[countsOffset+2*i : countsOffset+2*i+2]))
		counts[i] = c
		total += c
	}

	payload := data[:len(data)-trailerSize]
	if len(payload) != total*elementSize {
		return nil, ErrInvalidTrailer
	}

	batches := make([][]byte, batchCount)
	offset := 0
	for i, c := range counts {
		n := c * elementSize
		batches[i] = payload[offset : offset+n]
		offset += n
	}
	return batches, nil
}

// DecodeSingleBatchPayload strips the multi-batch trailer from a reply body
// and returns the flat element payload beneath it, the way a client reading
// its own single-batch replies needs: unlike DecodeMultiBatch it never
// errors on a malformed or undersized trailer, since a reply too short to
// carry one validly is the wire's way of saying "zero results", not a
// protocol fault. It also doesn't split per-batch, since a client request
// is always encoded as exactly one logical batch.
func DecodeSingleBatchPayload(data []byte, elementSize int) []byte {
	if elementSize <= 0 || len(data) < 2 {
		return nil
	}
	batchCount := int(binary.LittleEndian.Uint16(data[len(data)-2:]))
	if batchCount == 0 {
		return nil
	}
	trailerSize := TrailerTotalSize(elementSize, batchCount)
	if len(data) < trailerSize {
		return nil
	}
	return data[:len(data)-trailerSize]
}
