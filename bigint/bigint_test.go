package bigint_test

import (
	"math"
	"testing"

	"github.com/boltstream/packstream/bigint"
	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := bigint.FromInt64(17)
	b := bigint.FromInt64(-5)

	assert.Equal(t, int64(12), a.Add(b).Int64())
	assert.Equal(t, int64(22), a.Sub(b).Int64())
	assert.Equal(t, int64(-85), a.Mul(b).Int64())
	assert.Equal(t, int64(-3), a.Div(b).Int64())
	assert.Equal(t, int64(2), a.Mod(b).Int64())
}

func TestSignAndCmp(t *testing.T) {
	assert.Equal(t, -1, bigint.FromInt64(-1).Sign())
	assert.Equal(t, 0, bigint.FromInt64(0).Sign())
	assert.Equal(t, 1, bigint.FromInt64(1).Sign())
	assert.True(t, bigint.FromInt64(0).IsZero())

	assert.Equal(t, -1, bigint.FromInt64(1).Cmp(bigint.FromInt64(2)))
	assert.Equal(t, 1, bigint.FromInt64(2).Cmp(bigint.FromInt64(1)))
	assert.Equal(t, 0, bigint.FromInt64(2).Cmp(bigint.FromInt64(2)))
}

func TestFloatConversion(t *testing.T) {
	assert.Equal(t, float64(42), bigint.FromInt64(42).Float64())
	assert.Equal(t, int64(42), bigint.FromFloat64(42.9).Int64())
	assert.Equal(t, int64(0), bigint.FromFloat64(math.NaN()).Int64())
	assert.Equal(t, int64(math.MaxInt64), bigint.FromFloat64(1e30).Int64())
	assert.Equal(t, int64(math.MinInt64), bigint.FromFloat64(-1e30).Int64())
}

func TestMulOverflows(t *testing.T) {
	assert.False(t, bigint.FromInt64(400).MulOverflows(bigint.FromInt64(9999)))
	assert.True(t, bigint.FromInt64(math.MaxInt64).MulOverflows(bigint.FromInt64(2)))
	assert.False(t, bigint.FromInt64(-400).MulOverflows(bigint.FromInt64(9999)))
}
