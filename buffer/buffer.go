// Package buffer provides ByteBuffer, the immutable view over raw bytes
// that every Magic Analyzer node owns exclusively.
package buffer

import (
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// ByteBuffer is an immutable, cheaply-sliceable view over a byte sequence.
// Its length and content never change after construction; callers that need
// a mutated view must construct a new ByteBuffer. The UTF-8 decode and the
// 64-bit fingerprint hash are computed lazily and cached, matching the
// "lazy caches" behavior in the data model.
type ByteBuffer struct {
	data []byte

	utf8Once sync.Once
	utf8Str  string
	utf8Ok   bool

	hashOnce sync.Once
	hash     uint64
}

// New wraps data in a ByteBuffer. The caller must not mutate data afterwards;
// New does not copy.
func New(data []byte) *ByteBuffer {
	if data == nil {
		data = []byte{}
	}
	return &ByteBuffer{data: data}
}

// Len returns the number of bytes in the buffer.
func (b *ByteBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns the underlying byte slice. Callers must treat it as
// read-only; ByteBuffer makes no copy for this accessor.
func (b *ByteBuffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Slice returns a view over [start, end), clamped to the buffer's bounds.
// It always returns a new ByteBuffer over a re-sliced (not copied) backing
// array, even when the range covers the whole buffer, since correctness
// here never depends on whether the result shares storage with the parent.
func (b *ByteBuffer) Slice(start, end int) *ByteBuffer {
	if start < 0 {
		start = 0
	}
	if end > b.Len() {
		end = b.Len()
	}
	if start >= end {
		return New(nil)
	}
	return New(b.data[start:end])
}

// TryUTF8 returns the buffer decoded as a UTF-8 string and whether the
// decode succeeded. The result is cached after the first call.
func (b *ByteBuffer) TryUTF8() (string, bool) {
	b.utf8Once.Do(func() {
		if utf8.Valid(b.data) {
			b.utf8Ok = true
			b.utf8Str = string(b.data)
		}
	})
	return b.utf8Str, b.utf8Ok
}

// Hash64 returns a stable 64-bit hash of the buffer's contents, used as the
// buffer component of a MagicNode fingerprint. The hash is cached.
func (b *ByteBuffer) Hash64() uint64 {
	b.hashOnce.Do(func() {
		b.hash = xxhash.Sum64(b.data)
	})
	return b.hash
}

// IsEmpty reports whether the buffer has zero length.
func (b *ByteBuffer) IsEmpty() bool {
	return b.Len() == 0
}
