package packstream

import "fmt"

// ProtocolError marks a wire-level violation: an unrecognized marker, a
// struct whose field count does not match its signature, a vendor
// extension marker, a non-string map key, or a value too large for any
// size class. It is fatal to the connection that produced it. A byte
// array sent to a peer without byte-array support is a UsageError, not
// a ProtocolError.
type ProtocolError struct {
	// Reason is a short, human-readable description of the violation.
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("packstream: protocol error: %s", e.Reason)
}

func newUnknownMarkerError(m byte) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf("unrecognized marker 0x%02X", m)}
}

func newVendorBlobError(m byte) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf("marker 0x%02X is the vendor blob extension, not standard PackStream v1", m)}
}

func newStructSizeError(name string, want, got int) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf("%s expects %d fields, got %d", name, want, got)}
}

// NewStructSizeError reports a structure decoded with the wrong field
// count: wire-level violation, fatal to the connection (spec.md §4.2,
// §7). Callers outside this package — graph's hydrators, in
// particular — build their own *ProtocolError for this case through
// here so errors.As sees the same type regardless of which layer
// caught the mismatch.
func NewStructSizeError(name string, want, got int) *ProtocolError {
	return newStructSizeError(name, want, got)
}

func newOversizeError(kind string, n int64) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf("%s of length %d exceeds the maximum PackStream v1 size class", kind, n)}
}

// UsageError marks a value the Packer cannot represent: a graph entity
// supplied as a user parameter, a nil or unknown Value variant, or a
// byte array when the peer does not support byte arrays. There is no
// iterable materialization step: any Value type other than the
// variants in value.go is an unknown variant. Encoding reports it to the
// caller's onError callback rather than panicking or returning a
// partial message (spec.md §7).
type UsageError struct {
	// Reason is a short, human-readable description of the violation.
	Reason string
	// Value is the offending Go value, if any, kept for diagnostics.
	Value interface{}
}

func (e *UsageError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("packstream: usage error: %s", e.Reason)
	}
	return fmt.Sprintf("packstream: usage error: %s (%T)", e.Reason, e.Value)
}

func newUnpackableError(v interface{}) *UsageError {
	return &UsageError{Reason: "unable to pack value", Value: v}
}

func newGraphEntityInParamsError(v interface{}) *UsageError {
	return &UsageError{Reason: "graph entities are not allowed as request parameters", Value: v}
}

func newBytesUnsupportedError() *UsageError {
	return &UsageError{Reason: "peer does not support byte arrays"}
}
