package bolt

import "github.com/boltstream/packstream/packstream"

// writeInit writes an INIT request: (clientName: String, authToken: Map).
func writeInit(p *packstream.Packer, w packstream.Writer, clientName string, authToken *packstream.Map) error {
	if err := p.PackStructHeader(2, packstream.SignatureInit, w); err != nil {
		return err
	}
	if err := p.PackValue(packstream.String(clientName), w); err != nil {
		return err
	}
	return p.PackValue(authToken, w)
}

// writeRun writes a RUN request: (statement: String, parameters: Map).
// v1 has no transaction-config or bookmark fields on RUN itself — those
// travel inside parameters when the caller is building BEGIN/COMMIT/
// ROLLBACK pseudo-statements (spec.md §4.5).
func writeRun(p *packstream.Packer, w packstream.Writer, statement string, parameters *packstream.Map) error {
	if err := p.PackStructHeader(2, packstream.SignatureRun, w); err != nil {
		return err
	}
	if err := p.PackValue(packstream.String(statement), w); err != nil {
		return err
	}
	return p.PackValue(parameters, w)
}

// writePullAll writes a no-field PULL_ALL request.
func writePullAll(p *packstream.Packer, w packstream.Writer) error {
	return p.PackStructHeader(0, packstream.SignaturePullAll, w)
}

// writeDiscardAll writes a no-field DISCARD_ALL request.
func writeDiscardAll(p *packstream.Packer, w packstream.Writer) error {
	return p.PackStructHeader(0, packstream.SignatureDiscardAll, w)
}

// writeReset writes a no-field RESET request.
func writeReset(p *packstream.Packer, w packstream.Writer) error {
	return p.PackStructHeader(0, packstream.SignatureReset, w)
}

// writeAckFailure writes a no-field ACK_FAILURE request.
func writeAckFailure(p *packstream.Packer, w packstream.Writer) error {
	return p.PackStructHeader(0, packstream.SignatureAckFailure, w)
}
