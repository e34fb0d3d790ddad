package transport

import "sync"

// OwnedBuf is a reusable byte buffer that tracks its logical length
// separately from its capacity, and can be poisoned: marked unsafe to
// reuse because an in-flight I/O operation against it was cancelled and
// the kernel may still write to it after the caller has moved on.
type OwnedBuf struct {
	data     []byte
	length   int
	poisoned bool
}

func NewOwnedBuf(capacity int) *OwnedBuf {
	return &OwnedBuf{data: make([]byte, capacity)}
}

func (b *OwnedBuf) Capacity() int { return len(b.data) }
func (b *OwnedBuf) Len() int      { return b.length }

func (b *OwnedBuf) SetLen(n int) {
	if n > len(b.data) {
		panic("transport: OwnedBuf.SetLen exceeds capacity")
	}
	b.length = n
}

func (b *OwnedBuf) Slice() []byte    { return b.data[:b.length] }
func (b *OwnedBuf) FullSlice() []byte { return b.data }

func (b *OwnedBuf) IsPoisoned() bool { return b.poisoned }
func (b *OwnedBuf) Poison()          { b.poisoned = true }

func (b *OwnedBuf) Reset() {
	b.length = 0
	b.poisoned = false
}

// BufferPool hands out fixed-size OwnedBufs for in-flight I/O. A buffer
// whose operation was cancelled mid-flight goes to quarantine instead of
// back to the available pool, since the kernel may still be holding a
// pointer into it; quarantine only drains when the session closes and no
// further I/O against those buffers can land.
type BufferPool struct {
	mu         sync.Mutex
	available  []*OwnedBuf
	quarantine []*OwnedBuf
	bufferSize int
}

func NewBufferPool(bufferSize int) *BufferPool {
	return &BufferPool{bufferSize: bufferSize}
}

// Acquire returns a ready-to-use buffer, reusing one from the available
// pool if possible.
func (p *BufferPool) Acquire() *OwnedBuf {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.available); n > 0 {
		buf := p.available[n-1]
		p.available = p.available[:n-1]
		buf.Reset()
		return buf
	}
	return NewOwnedBuf(p.bufferSize)
}

// Release returns buf to the pool, or to quarantine if it was poisoned.
func (p *BufferPool) Release(buf *OwnedBuf) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if buf.IsPoisoned() {
		p.quarantine = append(p.quarantine, buf)
		return
	}
	p.available = append(p.available, buf)
}

// ClearQuarantine resets and reclaims every quarantined buffer into the
// available pool. Call only once the session is certain no cancelled I/O
// can still be in flight against them (i.e. on session close) — the
// buffers are not discarded, just marked safe again.
func (p *BufferPool) ClearQuarantine() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, buf := range p.quarantine {
		buf.Reset()
		p.available = append(p.available, buf)
	}
	p.quarantine = nil
}

func (p *BufferPool) QuarantineLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.quarantine)
}
