package packstream

// Writer is the output side of the chunked transport the Packer emits
// bytes to. Framing (chunk boundaries, flushing) is owned entirely by
// the implementation; the Packer only ever calls these typed
// primitives in the exact order its recursion visits the value tree
// (spec.md §5, §6). This module does not implement a production
// transport — see package bufchannel for the in-memory reference
// implementation used by tests and cmd/packstream-dump.
type Writer interface {
	WriteUint8(uint8) error
	WriteUint16(uint16) error
	WriteUint32(uint32) error
	WriteInt8(int8) error
	WriteInt16(int16) error
	WriteInt32(int32) error
	WriteFloat64(float64) error
	WriteBytes([]byte) error
}

// Reader is the input side of the chunked transport the Unpacker reads
// bytes from.
type Reader interface {
	ReadUint8() (uint8, error)
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
	ReadInt8() (int8, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadFloat64() (float64, error)
	ReadBytes(n uint32) ([]byte, error)
}
