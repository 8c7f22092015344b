// Package envelope implements the fixed-precision binary bounding-box codec
// used by the spatial index.
//
// An encoded envelope is the big-endian concatenation of four unsigned
// integers of Bits() width each, in w,s,e,n order. Minimum edges (w,s) are
// quantized rounding down and maximum edges (e,n) rounding up, so a decoded
// envelope always contains the rectangle it was encoded from. Overlap tests
// against it can produce false positives but never false negatives.
package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/geovcs/spatialfilter/internal/core/model"
)

const (
	// DefaultBits is the precision used by current index builds.
	DefaultBits = 20
	// MaxBits keeps the packed envelope within 128 bits.
	MaxBits = 32
	MinBits = 2
)

var (
	ErrOddBits      = errors.New("envelope: bits per value must be even")
	ErrBitsRange    = errors.New("envelope: bits per value out of range")
	ErrBadRowLength = errors.New("envelope: bad encoded envelope length")
)

// Codec encodes and decodes envelopes at a fixed precision. The zero value
// is not usable; obtain one from New or ForRow.
type Codec struct {
	bits   int
	maxInt uint64
}

func New(bits int) (Codec, error) {
	if bits < MinBits || bits > MaxBits {
		return Codec{}, fmt.Errorf("%w: %d not in [%d,%d]", ErrBitsRange, bits, MinBits, MaxBits)
	}
	if bits%2 != 0 {
		return Codec{}, fmt.Errorf("%w: %d", ErrOddBits, bits)
	}
	return Codec{bits: bits, maxInt: 1<<uint(bits) - 1}, nil
}

// ForRow derives the codec precision from the byte length of a stored
// envelope. The index carries no explicit precision field; four values of b
// bits pack into b/2 bytes, so a row of n bytes was written at 2n bits per
// value. This is the only place that inference lives.
func ForRow(row []byte) (Codec, error) {
	bits := len(row) * 2
	c, err := New(bits)
	if err != nil {
		return Codec{}, fmt.Errorf("%w: %d bytes: %v", ErrBadRowLength, len(row), err)
	}
	return c, nil
}

func (c Codec) Bits() int { return c.bits }

// EnvelopeSize returns the byte length of an encoded envelope at this precision.
func (c Codec) EnvelopeSize() int { return c.bits / 2 }

func (c Codec) Encode(r model.Rect) []byte {
	buf := make([]byte, c.EnvelopeSize())
	vals := [4]uint64{
		c.encodeValue(r.W, -180, 180, false),
		c.encodeValue(r.S, -90, 90, false),
		c.encodeValue(r.E, -180, 180, true),
		c.encodeValue(r.N, -90, 90, true),
	}
	for i, v := range vals {
		putBits(buf, i*c.bits, c.bits, v)
	}
	return buf
}

func (c Codec) Decode(row []byte) (model.Rect, error) {
	if len(row) != c.EnvelopeSize() {
		return model.Rect{}, fmt.Errorf("%w: got %d bytes, want %d", ErrBadRowLength, len(row), c.EnvelopeSize())
	}
	return model.Rect{
		W: c.decodeValue(getBits(row, 0*c.bits, c.bits), -180, 180),
		S: c.decodeValue(getBits(row, 1*c.bits, c.bits), -90, 90),
		E: c.decodeValue(getBits(row, 2*c.bits, c.bits), -180, 180),
		N: c.decodeValue(getBits(row, 3*c.bits, c.bits), -90, 90),
	}, nil
}

// maps v in [min,max] onto [0,maxInt], flooring for minimum edges and
// ceiling for maximum edges
func (c Codec) encodeValue(v, min, max float64, roundUp bool) uint64 {
	scaled := (v - min) / (max - min) * float64(c.maxInt)
	var n float64
	if roundUp {
		n = math.Ceil(scaled)
	} else {
		n = math.Floor(scaled)
	}
	if n <= 0 {
		return 0
	}
	if n >= float64(c.maxInt) {
		return c.maxInt
	}
	return uint64(n)
}

func (c Codec) decodeValue(u uint64, min, max float64) float64 {
	return min + float64(u)/float64(c.maxInt)*(max-min)
}

// putBits writes the low width bits of v into buf starting at bit offset
// bitOff, most significant bit first. Values straddle byte boundaries for
// any width not divisible by 8.
func putBits(buf []byte, bitOff, width int, v uint64) {
	for width > 0 {
		idx := bitOff >> 3
		free := 8 - (bitOff & 7)
		take := width
		if take > free {
			take = free
		}
		chunk := byte((v >> uint(width-take)) & (1<<uint(take) - 1))
		buf[idx] |= chunk << uint(free-take)
		bitOff += take
		width -= take
	}
}

func getBits(buf []byte, bitOff, width int) uint64 {
	var v uint64
	for width > 0 {
		idx := bitOff >> 3
		free := 8 - (bitOff & 7)
		take := width
		if take > free {
			take = free
		}
		chunk := (uint64(buf[idx]) >> uint(free-take)) & (1<<uint(take) - 1)
		v = v<<uint(take) | chunk
		bitOff += take
		width -= take
	}
	return v
}
