package packstream

import "math"

// Packer recursively encodes a Value tree to a Writer using PackStream
// v1's marker bytes. A Packer is reusable and stateless aside from the
// byteArraysSupported flag, which is set once after the Bolt handshake
// and read on every Pack call (spec.md §5: "treat it as write-once
// configuration").
type Packer struct {
	byteArraysSupported bool
}

// NewPacker returns a Packer. byteArraysSupported should reflect
// whether the peer negotiated support for the Bytes variant; Pack
// reports a UsageError for any Bytes value otherwise.
func NewPacker(byteArraysSupported bool) *Packer {
	return &Packer{byteArraysSupported: byteArraysSupported}
}

// Pack writes v to w. On success it writes exactly one complete
// value's worth of bytes. On failure it invokes onError with the
// cause and writes nothing further for the offending subtree — per
// spec.md §7, callers must not flush after a failed Pack, since the
// message the caller was building is now incomplete.
func (p *Packer) Pack(v Value, w Writer, onError func(error)) {
	if err := p.pack(v, w); err != nil {
		if onError != nil {
			onError(err)
		}
	}
}

func (p *Packer) pack(v Value, w Writer) error {
	switch t := v.(type) {
	case nil:
		return newUnpackableError(v)
	case Null:
		return w.WriteUint8(uint8(markerNull))
	case Bool:
		if t {
			return w.WriteUint8(uint8(markerTrue))
		}
		return w.WriteUint8(uint8(markerFalse))
	case Int:
		return p.packInt(int64(t), w)
	case Float:
		return p.packFloat(float64(t), w)
	case String:
		return p.packString(string(t), w)
	case Bytes:
		return p.packBytes([]byte(t), w)
	case List:
		return p.packList(t, w)
	case *Map:
		return p.packMap(t, w)
	case *Structure:
		return p.packStructure(t, w)
	default:
		if v != nil && v.Kind().IsGraphEntity() {
			return newGraphEntityInParamsError(v)
		}
		return newUnpackableError(v)
	}
}

func (p *Packer) packInt(i int64, w Writer) error {
	switch {
	case i >= -16 && i <= int64(tinyIntPositiveMax):
		return w.WriteUint8(uint8(int8(i)))
	case i >= math.MinInt8 && i <= math.MaxInt8:
		if err := w.WriteUint8(uint8(markerInt8)); err != nil {
			return err
		}
		return w.WriteInt8(int8(i))
	case i >= math.MinInt16 && i <= math.MaxInt16:
		if err := w.WriteUint8(uint8(markerInt16)); err != nil {
			return err
		}
		return w.WriteInt16(int16(i))
	case i >= math.MinInt32 && i <= math.MaxInt32:
		if err := w.WriteUint8(uint8(markerInt32)); err != nil {
			return err
		}
		return w.WriteInt32(int32(i))
	default:
		if err := w.WriteUint8(uint8(markerInt64)); err != nil {
			return err
		}
		hi := int32(i >> 32)
		lo := int32(i & 0xFFFFFFFF)
		if err := w.WriteInt32(hi); err != nil {
			return err
		}
		return w.WriteInt32(lo)
	}
}

func (p *Packer) packFloat(f float64, w Writer) error {
	if err := w.WriteUint8(uint8(markerFloat)); err != nil {
		return err
	}
	return w.WriteFloat64(f)
}

func (p *Packer) packString(s string, w Writer) error {
	b := encodeUTF8(s)
	n := len(b)
	switch {
	case n <= 15:
		if err := w.WriteUint8(uint8(markerTinyStringBase) + uint8(n)); err != nil {
			return err
		}
	case n <= 0xFF:
		if err := w.WriteUint8(uint8(markerString8)); err != nil {
			return err
		}
		if err := w.WriteUint8(uint8(n)); err != nil {
			return err
		}
	case n <= 0xFFFF:
		if err := w.WriteUint8(uint8(markerString16)); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(n)); err != nil {
			return err
		}
	case int64(n) <= 0xFFFFFFFF:
		if err := w.WriteUint8(uint8(markerString32)); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(n)); err != nil {
			return err
		}
	default:
		return newOversizeError("string", int64(n))
	}
	if n == 0 {
		return nil
	}
	return w.WriteBytes(b)
}

func (p *Packer) packBytes(b []byte, w Writer) error {
	if !p.byteArraysSupported {
		return newBytesUnsupportedError()
	}
	n := len(b)
	switch {
	case n <= 0xFF:
		if err := w.WriteUint8(uint8(markerBytes8)); err != nil {
			return err
		}
		if err := w.WriteUint8(uint8(n)); err != nil {
			return err
		}
	case n <= 0xFFFF:
		if err := w.WriteUint8(uint8(markerBytes16)); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(n)); err != nil {
			return err
		}
	case int64(n) <= 0xFFFFFFFF:
		if err := w.WriteUint8(uint8(markerBytes32)); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(n)); err != nil {
			return err
		}
	default:
		return newOversizeError("byte array", int64(n))
	}
	if n == 0 {
		return nil
	}
	return w.WriteBytes(b)
}

func (p *Packer) packListHeader(n int, w Writer) error {
	switch {
	case n <= 15:
		return w.WriteUint8(uint8(markerTinyListBase) + uint8(n))
	case n <= 0xFF:
		if err := w.WriteUint8(uint8(markerList8)); err != nil {
			return err
		}
		return w.WriteUint8(uint8(n))
	case n <= 0xFFFF:
		if err := w.WriteUint8(uint8(markerList16)); err != nil {
			return err
		}
		return w.WriteUint16(uint16(n))
	case int64(n) <= 0xFFFFFFFF:
		if err := w.WriteUint8(uint8(markerList32)); err != nil {
			return err
		}
		return w.WriteUint32(uint32(n))
	default:
		return newOversizeError("list", int64(n))
	}
}

func (p *Packer) packList(list List, w Writer) error {
	if err := p.packListHeader(len(list), w); err != nil {
		return err
	}
	for _, elem := range list {
		if err := p.pack(elem, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packer) packMapHeader(n int, w Writer) error {
	switch {
	case n <= 15:
		return w.WriteUint8(uint8(markerTinyMapBase) + uint8(n))
	case n <= 0xFF:
		if err := w.WriteUint8(uint8(markerMap8)); err != nil {
			return err
		}
		return w.WriteUint8(uint8(n))
	case n <= 0xFFFF:
		if err := w.WriteUint8(uint8(markerMap16)); err != nil {
			return err
		}
		return w.WriteUint16(uint16(n))
	case int64(n) <= 0xFFFFFFFF:
		if err := w.WriteUint8(uint8(markerMap32)); err != nil {
			return err
		}
		return w.WriteUint32(uint32(n))
	default:
		return newOversizeError("map", int64(n))
	}
}

// packMap iterates keys in insertion order, skipping any set to
// Absent, and emits the final count written (not m.Len()) as the
// header (spec.md §4.1).
func (p *Packer) packMap(m *Map, w Writer) error {
	if err := p.packMapHeader(m.EncodedLen(), w); err != nil {
		return err
	}
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		if _, ok := value.(absent); ok {
			continue
		}
		if err := p.packString(key, w); err != nil {
			return err
		}
		if err := p.pack(value, w); err != nil {
			return err
		}
	}
	return nil
}

// packStructHeader writes the struct marker, its field count, and its
// signature. spec.md §9 flags the reference implementation's
// STRUCT_16 branch for omitting the signature byte; this always emits
// it, in every branch.
func (p *Packer) packStructHeader(size int, signature byte, w Writer) error {
	switch {
	case size <= 15:
		if err := w.WriteUint8(uint8(markerTinyStructBase) + uint8(size)); err != nil {
			return err
		}
	case size <= 0xFF:
		if err := w.WriteUint8(uint8(markerStruct8)); err != nil {
			return err
		}
		if err := w.WriteUint8(uint8(size)); err != nil {
			return err
		}
	case size <= 0xFFFF:
		if err := w.WriteUint8(uint8(markerStruct16)); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(size)); err != nil {
			return err
		}
	default:
		return newOversizeError("struct", int64(size))
	}
	return w.WriteUint8(signature)
}

func (p *Packer) packStructure(s *Structure, w Writer) error {
	if err := p.packStructHeader(len(s.Fields), s.Signature, w); err != nil {
		return err
	}
	for _, field := range s.Fields {
		if err := p.pack(field, w); err != nil {
			return err
		}
	}
	return nil
}

// PackStructHeader exposes packStructHeader to callers outside the
// package (notably package bolt) that build request messages
// field-by-field rather than constructing a *Structure up front, the
// same shape as neo4j-go-driver's outgoing.appendRun calling
// packer.StructHeader then packing fields individually.
func (p *Packer) PackStructHeader(size int, signature byte, w Writer) error {
	return p.packStructHeader(size, signature, w)
}

// PackValue exposes pack to callers outside the package that need to
// propagate an error instead of routing through the onError callback
// (package bolt's request builders, which fail the whole write on the
// first error).
func (p *Packer) PackValue(v Value, w Writer) error {
	return p.pack(v, w)
}
