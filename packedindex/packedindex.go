// Package packedindex implements a dense unsigned integer vector backed by a
// contiguous byte buffer whose per-element byte width grows from 1 to 8
// bytes as stored values demand it.
//
// Index 0 is a reserved sentinel slot: Array never stores a caller value
// there, so callers can use 0 to mean "unset" in whatever structure embeds
// an Array (sparse rows, free-list heads, edge-entry links, ...). Iteration
// helpers therefore start at index 1.
package packedindex

import "golang.org/x/exp/constraints"

// Width is the per-element byte width of an Array's backing buffer.
type Width uint8

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

// Max is the largest value representable at width w.
func (w Width) Max() uint64 {
	if w == Width8 {
		return ^uint64(0)
	}
	return uint64(1)<<(8*uint(w)) - 1
}

// widthFor returns the narrowest Width able to hold v.
func widthFor(v uint64) Width {
	switch {
	case v <= Width1.Max():
		return Width1
	case v <= Width2.Max():
		return Width2
	case v <= Width4.Max():
		return Width4
	default:
		return Width8
	}
}

// Array is a variable-byte-width dense unsigned integer vector. The zero
// value is not usable; construct with New.
type Array struct {
	buf   []byte
	width Width
	// size counts logical slots including the reserved slot 0.
	size int
}

// New returns an empty Array, pre-seeded with its reserved sentinel slot.
func New() *Array {
	return &Array{
		buf:   make([]byte, Width1),
		width: Width1,
		size:  1,
	}
}

// Len returns the number of usable (non-sentinel) slots.
func (a *Array) Len() int { return a.size - 1 }

// Width reports the current per-element byte width.
func (a *Array) Width() Width { return a.width }

// Get returns the zero-padded unsigned value stored at index.
func (a *Array) Get(index int) uint64 {
	a.checkBounds(index)
	return readWidth(a.buf[index*int(a.width):], a.width)
}

// GetOrZero behaves like Get but returns 0 instead of panicking when index
// falls outside the current usable range. Useful for sparse presence checks
// where "not yet grown this far" and "explicitly zero" mean the same thing.
func (a *Array) GetOrZero(index int) uint64 {
	if index <= 0 || index >= a.size {
		return 0
	}
	return a.Get(index)
}

// Set overwrites the value at index, re-packing the whole buffer to a wider
// width first if v does not fit in the current width.
func (a *Array) Set(index int, v uint64) {
	a.checkBounds(index)
	if need := widthFor(v); need > a.width {
		a.repack(need)
	}
	writeWidth(a.buf[index*int(a.width):], a.width, v)
}

// Push appends v, growing size by one and returning the assigned index.
func (a *Array) Push(v uint64) int {
	if need := widthFor(v); need > a.width {
		a.repack(need)
	}
	index := a.size
	a.size++
	a.buf = append(a.buf, make([]byte, a.width)...)
	writeWidth(a.buf[index*int(a.width):], a.width, v)
	return index
}

// Pop removes and returns the last usable slot. ok is false if the array
// holds only the sentinel slot.
func (a *Array) Pop() (v uint64, ok bool) {
	if a.size <= 1 {
		return 0, false
	}
	last := a.size - 1
	v = a.Get(last)
	a.size--
	a.buf = a.buf[:a.size*int(a.width)]
	return v, true
}

// Resize sets the number of usable slots to n, truncating or zero-filling
// as needed. maxValue bounds the values the caller intends to store after
// growth, so Resize can pre-widen the buffer instead of repacking on every
// subsequent Set.
func (a *Array) Resize(n int, maxValue uint64) {
	if n < 0 {
		n = 0
	}
	if need := widthFor(maxValue); need > a.width {
		a.repack(need)
	}
	newSize := n + 1
	switch {
	case newSize == a.size:
		return
	case newSize < a.size:
		a.size = newSize
		a.buf = a.buf[:a.size*int(a.width)]
	default:
		grow := newSize - a.size
		a.buf = append(a.buf, make([]byte, grow*int(a.width))...)
		a.size = newSize
	}
}

func (a *Array) checkBounds(index int) {
	if index <= 0 || index >= a.size {
		panic("packedindex: index out of range")
	}
}

// repack reallocates the buffer at a new (always wider) width, preserving
// every currently stored value.
func (a *Array) repack(newWidth Width) {
	newBuf := make([]byte, a.size*int(newWidth))
	for i := 0; i < a.size; i++ {
		v := readWidth(a.buf[i*int(a.width):], a.width)
		writeWidth(newBuf[i*int(newWidth):], newWidth, v)
	}
	a.buf = newBuf
	a.width = newWidth
}

func readWidth(b []byte, w Width) uint64 {
	var v uint64
	for i := Width(0); i < w; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func writeWidth(b []byte, w Width, v uint64) {
	for i := Width(0); i < w; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// Unsigned constrains the integer types FromValues accepts.
type Unsigned interface {
	constraints.Unsigned
}

// FromValues builds an Array containing the given values, choosing the
// narrowest width that fits the largest one up front.
func FromValues[T Unsigned](values []T) *Array {
	a := New()
	var max uint64
	for _, v := range values {
		if u := uint64(v); u > max {
			max = u
		}
	}
	a.Resize(len(values), max)
	for i, v := range values {
		a.Set(i+1, uint64(v))
	}
	return a
}
