package packstream_test

import (
	"testing"

	"github.com/boltstream/packstream/packstream"
	"github.com/boltstream/packstream/packstream/bufchannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unpack(t *testing.T, b []byte) packstream.Value {
	t.Helper()
	u := packstream.NewUnpacker()
	v, err := u.Unpack(bufchannel.NewFromBytes(b))
	require.NoError(t, err)
	return v
}

func TestUnpackLiterals(t *testing.T) {
	assert.Equal(t, packstream.Null{}, unpack(t, []byte{0xC0}))
	assert.Equal(t, packstream.Bool(true), unpack(t, []byte{0xC3}))
	assert.Equal(t, packstream.Bool(false), unpack(t, []byte{0xC2}))
	assert.Equal(t, packstream.Int(1), unpack(t, []byte{0x01}))
	assert.Equal(t, packstream.Int(-16), unpack(t, []byte{0xF0}))
	assert.Equal(t, packstream.Int(-17), unpack(t, []byte{0xC8, 0xEF}))
	assert.Equal(t, packstream.Int(200), unpack(t, []byte{0xC9, 0x00, 0xC8}))
	assert.Equal(t, packstream.String("hello"), unpack(t, []byte{0x85, 0x68, 0x65, 0x6C, 0x6C, 0x6F}))

	list := unpack(t, []byte{0x93, 0x01, 0x02, 0x03}).(packstream.List)
	assert.Equal(t, packstream.List{packstream.Int(1), packstream.Int(2), packstream.Int(3)}, list)
}

func TestUnpackMapLiteral(t *testing.T) {
	m := unpack(t, []byte{0xA1, 0x81, 0x6B, 0x81, 0x76}).(*packstream.Map)
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, packstream.String("v"), v)
}

func TestUnpackMapDuplicateKeyLastWriteWins(t *testing.T) {
	// {"k": 1, "k": 2} as TinyMap with 2 entries.
	b := []byte{0xA2, 0x81, 0x6B, 0x01, 0x81, 0x6B, 0x02}
	m := unpack(t, b).(*packstream.Map)
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, packstream.Int(2), v)
	assert.Equal(t, 1, m.Len())
}

func TestUnpackStructureGenericWithoutHydrator(t *testing.T) {
	// INIT("x", {}) as TinyStruct(2) signature 0x01.
	b := []byte{0xB2, 0x01, 0x81, 0x78, 0xA0}
	s := unpack(t, b).(*packstream.Structure)
	assert.Equal(t, packstream.SignatureInit, s.Signature)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, packstream.String("x"), s.Fields[0])
}

func TestUnpackStructureWithHydrator(t *testing.T) {
	u := packstream.NewUnpacker()
	u.Hydrator = hydratorFunc(func(signature byte, fields packstream.List) (packstream.Value, bool, error) {
		if signature == packstream.SignatureNode {
			return packstream.String("hydrated"), true, nil
		}
		return nil, false, nil
	})
	b := []byte{0xB3, 0x4E, 0x01, 0x90, 0xA0}
	v, err := u.Unpack(bufchannel.NewFromBytes(b))
	require.NoError(t, err)
	assert.Equal(t, packstream.String("hydrated"), v)
}

type hydratorFunc func(signature byte, fields packstream.List) (packstream.Value, bool, error)

func (f hydratorFunc) Hydrate(signature byte, fields packstream.List) (packstream.Value, bool, error) {
	return f(signature, fields)
}

func TestUnpackRejectsUnknownMarker(t *testing.T) {
	u := packstream.NewUnpacker()
	_, err := u.Unpack(bufchannel.NewFromBytes([]byte{0xD3}))
	require.Error(t, err)
	var protoErr *packstream.ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestUnpackRejectsVendorBlobMarker(t *testing.T) {
	u := packstream.NewUnpacker()
	_, err := u.Unpack(bufchannel.NewFromBytes([]byte{0xC4, 0x00}))
	require.Error(t, err)
	var protoErr *packstream.ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestUnpackRejectsNonStringMapKey(t *testing.T) {
	// TinyMap(1) with an integer key.
	b := []byte{0xA1, 0x01, 0x01}
	u := packstream.NewUnpacker()
	_, err := u.Unpack(bufchannel.NewFromBytes(b))
	require.Error(t, err)
}

func TestUnpackDisableLosslessIntegers(t *testing.T) {
	u := packstream.NewUnpacker()
	u.DisableLosslessIntegers = true
	v, err := u.Unpack(bufchannel.NewFromBytes([]byte{0x05}))
	require.NoError(t, err)
	assert.Equal(t, packstream.Float(5), v)
}

func TestUnpackSizeClassBoundaries(t *testing.T) {
	p := packstream.NewPacker(true)
	sizes := []int{0, 15, 16, 255, 256, 65535, 65536}
	for _, n := range sizes {
		elems := make(packstream.List, n)
		for i := range elems {
			elems[i] = packstream.Int(0)
		}
		buf := bufchannel.New()
		var encErr error
		p.Pack(elems, buf, func(err error) { encErr = err })
		require.NoError(t, encErr)

		u := packstream.NewUnpacker()
		v, err := u.Unpack(bufchannel.NewFromBytes(buf.Bytes()))
		require.NoError(t, err)
		assert.Len(t, v.(packstream.List), n)
	}
}

func TestPackUnpackRoundTripsFloat(t *testing.T) {
	p := packstream.NewPacker(true)
	buf := bufchannel.New()
	var encErr error
	p.Pack(packstream.Float(3.14159), buf, func(err error) { encErr = err })
	require.NoError(t, encErr)

	v := unpack(t, buf.Bytes())
	assert.InDelta(t, 3.14159, float64(v.(packstream.Float)), 1e-9)
}
