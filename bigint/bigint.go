// Package bigint provides an exact signed 64-bit integer value type.
//
// The floor-division helpers in package temporal (FloorDiv, FloorMod)
// route through BigInt so they read like the reference algorithm they
// are derived from. packstream.Int and the rest of temporal's calendar
// arithmetic use plain int64 and do not go through this type.
package bigint

import (
	"math"
	"math/bits"
)

// BigInt is a signed 64-bit integer with exact arithmetic.
type BigInt int64

// Zero is the additive identity.
const Zero BigInt = 0

// FromInt64 wraps a native int64.
func FromInt64(v int64) BigInt {
	return BigInt(v)
}

// Int64 returns the native int64 value.
func (v BigInt) Int64() int64 {
	return int64(v)
}

// Add returns v + other.
func (v BigInt) Add(other BigInt) BigInt {
	return v + other
}

// Sub returns v - other.
func (v BigInt) Sub(other BigInt) BigInt {
	return v - other
}

// Mul returns v * other.
func (v BigInt) Mul(other BigInt) BigInt {
	return v * other
}

// Div returns v / other, truncated toward zero.
func (v BigInt) Div(other BigInt) BigInt {
	return v / other
}

// Mod returns v % other, with the sign of v (truncated division's remainder).
func (v BigInt) Mod(other BigInt) BigInt {
	return v % other
}

// Sign returns -1, 0, or 1 according to whether v is negative, zero, or positive.
func (v BigInt) Sign() int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Cmp returns -1, 0, or 1 according to whether v is less than, equal to,
// or greater than other.
func (v BigInt) Cmp(other BigInt) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether v is zero.
func (v BigInt) IsZero() bool {
	return v == 0
}

// Float64 converts v to a float64. Values outside the range exactly
// representable by float64 lose precision silently; unlike the
// Unpacker's DisableLosslessIntegers conversion, this never returns ±Inf.
func (v BigInt) Float64() float64 {
	return float64(v)
}

// FromFloat64 converts f to a BigInt, truncating toward zero. Magnitudes
// beyond the signed 64-bit range saturate to the nearest representable
// bound rather than wrapping, and NaN converts to zero.
func FromFloat64(f float64) BigInt {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return BigInt(math.MaxInt64)
	case f <= math.MinInt64:
		return BigInt(math.MinInt64)
	default:
		return BigInt(int64(f))
	}
}

// MulOverflows reports whether v*other would overflow a signed 64-bit
// result, using a 128-bit widening multiply so a caller can detect the
// overflow before multiplying instead of after. Package temporal does
// not call it; its year*400/zeroDay*400 arithmetic is plain int64.
func (v BigInt) MulOverflows(other BigInt) bool {
	hi, lo := bits64Mul(int64(v), int64(other))
	if hi == 0 && lo >= 0 {
		return false
	}
	if hi == -1 && lo < 0 {
		return false
	}
	return true
}

// bits64Mul performs a signed 64x64->128 bit multiply, returning the
// high and low 64-bit halves of the two's-complement result.
func bits64Mul(x, y int64) (hi, lo int64) {
	uhi, ulo := bits.Mul64(uint64(x), uint64(y))
	hi, lo = int64(uhi), int64(ulo)
	if x < 0 {
		hi -= y
	}
	if y < 0 {
		hi -= x
	}
	return hi, lo
}
