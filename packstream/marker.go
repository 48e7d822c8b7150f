// Package packstream implements the PackStream v1 wire codec: a
// self-describing, tagged binary serialization format in the spirit of
// MessagePack, extended with a "structure" construct for typed domain
// objects (graph nodes, relationships, paths).
//
// The package exposes a recursive Packer and Unpacker over the Writer
// and Reader channel contracts (see channel.go) rather than over
// []byte, so the transport's chunk boundaries never have to be known
// to the codec.
package packstream

// marker is the first byte of an encoded value, naming its kind and,
// for small values, carrying the length or the tiny-int value itself.
type marker uint8

const (
	markerNull  marker = 0xC0
	markerFalse marker = 0xC2
	markerTrue  marker = 0xC3
	markerFloat marker = 0xC1

	markerInt8  marker = 0xC8
	markerInt16 marker = 0xC9
	markerInt32 marker = 0xCA
	markerInt64 marker = 0xCB

	markerBytes8  marker = 0xCC
	markerBytes16 marker = 0xCD
	markerBytes32 marker = 0xCE

	markerTinyStringBase marker = 0x80
	markerTinyStringMax  marker = 0x8F
	markerString8        marker = 0xD0
	markerString16       marker = 0xD1
	markerString32       marker = 0xD2

	markerTinyListBase marker = 0x90
	markerTinyListMax  marker = 0x9F
	markerList8        marker = 0xD4
	markerList16       marker = 0xD5
	markerList32       marker = 0xD6

	markerTinyMapBase marker = 0xA0
	markerTinyMapMax  marker = 0xAF
	markerMap8        marker = 0xD8
	markerMap16       marker = 0xD9
	markerMap32       marker = 0xDA

	// There is no STRUCT_32: spec.md §9 rejects the open question in
	// favor of v1's existing TinyStruct/Struct8/Struct16 ceiling of
	// 65535 fields, which is ample for every structure this module
	// defines. No marker byte is reserved for it, so one would decode
	// as an unrecognized marker rather than a dedicated error.
	markerTinyStructBase marker = 0xB0
	markerTinyStructMax  marker = 0xBF
	markerStruct8        marker = 0xDC
	markerStruct16       marker = 0xDD

	// markerBlob8/markerBlob16 are the vendor "blob" extension markers
	// (MIME-typed byte payload). Not standard PackStream v1; see
	// spec.md §9 Open Questions. Decoding either is a ProtocolError
	// naming the marker as a vendor extension rather than "unrecognized".
	markerBlob8  marker = 0xC4
	markerBlob16 marker = 0xC5

	// tinyIntPositiveMax/tinyIntNegativeMin bound the TinyInt class,
	// which is folded directly into the marker byte: 0x00..0x7F for
	// 0..127 and 0xF0..0xFF for -16..-1.
	tinyIntPositiveMax marker = 0x7F
	tinyIntNegativeMin marker = 0xF0
)

// Graph structure signatures, dispatched on by the Unpacker (spec.md §4.2).
const (
	SignatureNode                byte = 0x4E
	SignatureRelationship        byte = 0x52
	SignatureUnboundRelationship byte = 0x72
	SignaturePath                byte = 0x50
)

// Bolt v1 request signatures (spec.md §6), re-exported here because
// request messages are themselves PackStream structures.
const (
	SignatureInit       byte = 0x01
	SignatureAckFailure byte = 0x0E
	SignatureReset      byte = 0x0F
	SignatureRun        byte = 0x10
	SignatureDiscardAll byte = 0x2F
	SignaturePullAll    byte = 0x3F
	SignatureRecord     byte = 0x71
	SignatureSuccess    byte = 0x70
	SignatureIgnored    byte = 0x7E
	SignatureFailure    byte = 0x7F
)
