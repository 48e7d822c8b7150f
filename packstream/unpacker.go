package packstream

import "math"

// Hydrator lets a higher-level package (notably graph) turn a decoded
// Structure into a typed domain value without the Unpacker importing
// that package — Go has no forward declarations, and package graph
// must import packstream for the Value/Structure/List types, so this
// interface inverts the dependency instead of creating a cycle.
//
// Hydrate is called with the structure's signature and its
// already-decoded field list (nested structures are hydrated
// bottom-up, so e.g. a Path's "nodes" field already holds hydrated
// Node values by the time Hydrate sees it). It returns handled=false
// to leave the structure generic.
type Hydrator interface {
	Hydrate(signature byte, fields List) (value Value, handled bool, err error)
}

// Unpacker recursively decodes a Reader into a Value tree. An Unpacker
// is reusable and holds no state beyond its configuration flags
// (spec.md §5).
type Unpacker struct {
	// DisableLosslessIntegers, when true, converts decoded integers to
	// Float on the way out (±Inf for magnitudes above 2^53 - 1, which a
	// float64 cannot represent exactly), matching drivers that trade precision for a
	// native numeric type (spec.md §4.2).
	DisableLosslessIntegers bool

	// Hydrator, if set, is consulted for every decoded Structure.
	Hydrator Hydrator
}

// NewUnpacker returns an Unpacker with lossless integers and no
// hydrator.
func NewUnpacker() *Unpacker {
	return &Unpacker{}
}

// Unpack reads exactly the bytes of one value from r.
func (u *Unpacker) Unpack(r Reader) (Value, error) {
	m, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	return u.unpackMarker(marker(m), r)
}

func (u *Unpacker) unpackMarker(m marker, r Reader) (Value, error) {
	switch {
	case m == markerNull:
		return Null{}, nil
	case m == markerTrue:
		return Bool(true), nil
	case m == markerFalse:
		return Bool(false), nil
	case m == markerFloat:
		return u.unpackFloat(r)
	case isTinyInt(m):
		return u.finishInt(tinyIntValue(m)), nil
	case m == markerInt8:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		return u.finishInt(int64(v)), nil
	case m == markerInt16:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		return u.finishInt(int64(v)), nil
	case m == markerInt32:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return u.finishInt(int64(v)), nil
	case m == markerInt64:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return u.finishInt(v), nil
	case isTinyString(m):
		return u.unpackStringBody(r, uint32(m-markerTinyStringBase))
	case m == markerString8:
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return u.unpackStringBody(r, uint32(n))
	case m == markerString16:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackStringBody(r, uint32(n))
	case m == markerString32:
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackStringBody(r, n)
	case isTinyList(m):
		return u.unpackListBody(r, uint32(m-markerTinyListBase))
	case m == markerList8:
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return u.unpackListBody(r, uint32(n))
	case m == markerList16:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackListBody(r, uint32(n))
	case m == markerList32:
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackListBody(r, n)
	case m == markerBytes8:
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return u.unpackBytesBody(r, uint32(n))
	case m == markerBytes16:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackBytesBody(r, uint32(n))
	case m == markerBytes32:
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackBytesBody(r, n)
	case isTinyMap(m):
		return u.unpackMapBody(r, uint32(m-markerTinyMapBase))
	case m == markerMap8:
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return u.unpackMapBody(r, uint32(n))
	case m == markerMap16:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackMapBody(r, uint32(n))
	case m == markerMap32:
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackMapBody(r, n)
	case isTinyStruct(m):
		return u.unpackStructBody(r, int(m-markerTinyStructBase))
	case m == markerStruct8:
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return u.unpackStructBody(r, int(n))
	case m == markerStruct16:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackStructBody(r, int(n))
	case m == markerBlob8 || m == markerBlob16:
		return nil, newVendorBlobError(uint8(m))
	default:
		return nil, newUnknownMarkerError(uint8(m))
	}
}

func isTinyInt(m marker) bool {
	return m <= tinyIntPositiveMax || m >= tinyIntNegativeMin
}

func tinyIntValue(m marker) int64 {
	if m <= tinyIntPositiveMax {
		return int64(m)
	}
	return int64(m) - 256
}

func isTinyString(m marker) bool { return m >= markerTinyStringBase && m <= markerTinyStringMax }
func isTinyList(m marker) bool   { return m >= markerTinyListBase && m <= markerTinyListMax }
func isTinyMap(m marker) bool    { return m >= markerTinyMapBase && m <= markerTinyMapMax }
func isTinyStruct(m marker) bool { return m >= markerTinyStructBase && m <= markerTinyStructMax }

func (u *Unpacker) finishInt(v int64) Value {
	if !u.DisableLosslessIntegers {
		return Int(v)
	}
	return Float(lossyFloat(v))
}

// maxSafeInteger is the largest magnitude below which every integer
// is exactly representable as a float64 (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

// lossyFloat converts v to float64, matching JavaScript drivers' choice
// to surface ±Infinity rather than a silently wrong finite value when a
// 64-bit integer's magnitude cannot round-trip through a double.
func lossyFloat(v int64) float64 {
	if v > maxSafeInteger {
		return math.Inf(1)
	}
	if v < -maxSafeInteger {
		return math.Inf(-1)
	}
	return float64(v)
}

func (u *Unpacker) unpackFloat(r Reader) (Value, error) {
	f, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	return Float(f), nil
}

func (u *Unpacker) unpackStringBody(r Reader, n uint32) (Value, error) {
	s, err := decodeUTF8(r, n)
	if err != nil {
		return nil, err
	}
	return String(s), nil
}

func (u *Unpacker) unpackBytesBody(r Reader, n uint32) (Value, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return Bytes(b), nil
}

func (u *Unpacker) unpackListBody(r Reader, n uint32) (Value, error) {
	list := make(List, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := u.Unpack(r)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func (u *Unpacker) unpackMapBody(r Reader, n uint32) (Value, error) {
	m := NewMap()
	for i := uint32(0); i < n; i++ {
		keyValue, err := u.Unpack(r)
		if err != nil {
			return nil, err
		}
		key, ok := keyValue.(String)
		if !ok {
			return nil, &ProtocolError{Reason: "map key is not a string"}
		}
		v, err := u.Unpack(r)
		if err != nil {
			return nil, err
		}
		// Last write wins on duplicate keys (spec.md §3); Map.Set
		// already implements that.
		m.Set(string(key), v)
	}
	return m, nil
}

func (u *Unpacker) unpackStructBody(r Reader, size int) (Value, error) {
	signature, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	fields := make(List, 0, size)
	for i := 0; i < size; i++ {
		v, err := u.Unpack(r)
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}

	if u.Hydrator != nil {
		if v, handled, err := u.Hydrator.Hydrate(signature, fields); err != nil {
			return nil, err
		} else if handled {
			return v, nil
		}
	}

	return &Structure{Signature: signature, Fields: fields}, nil
}
