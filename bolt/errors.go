package bolt

import "fmt"

// CapabilityError marks a request the v1 façade cannot honor: a
// non-empty transaction config passed to run or beginTransaction. It is
// fatal to the connection. A byte array sent to a peer that never
// negotiated support for it is not reported with this type; the Packer
// reports it as a *packstream.UsageError the caller can recover from.
type CapabilityError struct {
	Reason string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("bolt: capability error: %s", e.Reason)
}

func newTransactionConfigUnsupportedError() *CapabilityError {
	return &CapabilityError{Reason: "v1 does not support transaction configuration"}
}
