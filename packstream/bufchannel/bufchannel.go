// Package bufchannel is a []byte-backed reference implementation of
// the packstream.Writer and packstream.Reader contracts. It exists for
// tests and for cmd/packstream-dump: the production transport (socket
// framing, chunk boundaries, handshake) is an external collaborator
// per spec.md §1 and is not implemented by this module.
package bufchannel

import (
	"encoding/binary"
	"io"
	"math"
)

// Buffer is an in-memory packstream.Writer and packstream.Reader, with
// no chunk framing: every write simply appends, every read simply
// advances a cursor. Callers that want to exercise real Bolt chunk
// boundaries should wrap Buffer.Bytes() in their own framing, not
// extend this type.
type Buffer struct {
	buf []byte
	pos int
}

// New returns an empty Buffer ready for writing.
func New() *Buffer {
	return &Buffer{}
}

// NewFromBytes returns a Buffer preloaded with b, ready for reading.
func NewFromBytes(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Bytes returns the bytes written so far.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset discards all buffered content and rewinds the read cursor.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
}

func (b *Buffer) WriteUint8(v uint8) error {
	b.buf = append(b.buf, v)
	return nil
}

func (b *Buffer) WriteInt8(v int8) error {
	return b.WriteUint8(uint8(v))
}

func (b *Buffer) WriteUint16(v uint16) error {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return nil
}

func (b *Buffer) WriteInt16(v int16) error {
	return b.WriteUint16(uint16(v))
}

func (b *Buffer) WriteUint32(v uint32) error {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return nil
}

func (b *Buffer) WriteInt32(v int32) error {
	return b.WriteUint32(uint32(v))
}

func (b *Buffer) WriteFloat64(v float64) error {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf = append(b.buf, tmp[:]...)
	return nil
}

func (b *Buffer) WriteBytes(p []byte) error {
	b.buf = append(b.buf, p...)
	return nil
}

func (b *Buffer) take(n int) ([]byte, error) {
	if b.pos+n > len(b.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	p := b.buf[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

func (b *Buffer) ReadUint8() (uint8, error) {
	p, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *Buffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

func (b *Buffer) ReadUint16() (uint16, error) {
	p, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

func (b *Buffer) ReadUint32() (uint32, error) {
	p, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *Buffer) ReadInt64() (int64, error) {
	p, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(p)), nil
}

func (b *Buffer) ReadFloat64() (float64, error) {
	p, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
}

func (b *Buffer) ReadBytes(n uint32) ([]byte, error) {
	p, err := b.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}
