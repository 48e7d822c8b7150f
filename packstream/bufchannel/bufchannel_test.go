package bufchannel_test

import (
	"io"
	"testing"

	"github.com/boltstream/packstream/packstream/bufchannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	b := bufchannel.New()
	require.NoError(t, b.WriteUint8(0x2A))
	require.NoError(t, b.WriteInt16(-5))
	require.NoError(t, b.WriteUint32(0xDEADBEEF))
	require.NoError(t, b.WriteFloat64(3.5))
	require.NoError(t, b.WriteBytes([]byte{1, 2, 3}))

	r := bufchannel.NewFromBytes(b.Bytes())
	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2A), u8)

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-5), i16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 3.5, f64)

	bs, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, bs)
}

func TestReadPastEndReturnsUnexpectedEOF(t *testing.T) {
	r := bufchannel.NewFromBytes([]byte{0x01})
	_, err := r.ReadUint32()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestResetClearsBufferAndCursor(t *testing.T) {
	b := bufchannel.New()
	require.NoError(t, b.WriteUint8(1))
	b.Reset()
	assert.Empty(t, b.Bytes())

	require.NoError(t, b.WriteUint8(7))
	r := bufchannel.NewFromBytes(b.Bytes())
	v, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
}

func TestInt64RoundTrip(t *testing.T) {
	b := bufchannel.New()
	require.NoError(t, b.WriteInt32(int32(-1)))
	require.NoError(t, b.WriteInt32(int32(-1)))
	r := bufchannel.NewFromBytes(b.Bytes())
	hi, err := r.ReadInt32()
	require.NoError(t, err)
	lo, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), hi)
	assert.Equal(t, int32(-1), lo)

	r64 := bufchannel.NewFromBytes(b.Bytes())
	v, err := r64.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)
}
