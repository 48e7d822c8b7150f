// Package bolt is a thin Bolt v1 request/response façade over the
// packstream codec: it builds INIT/RUN/PULL_ALL/RESET/ACK_FAILURE/
// DISCARD_ALL request messages as PackStream structures and enforces
// v1's "flush now" sequencing and transaction-config precondition
// (spec.md §4.5). It does not own the transport, the chunking, or
// response decoding — those are the Connection's job.
package bolt

import (
	"fmt"

	"github.com/boltstream/packstream/logger"
	"github.com/boltstream/packstream/packstream"
)

// Observer receives the outcome of a request: zero or more records,
// then either a completion with summary metadata or an error
// (spec.md §6: "onNext(record), onCompleted(metadata), onError(error)").
type Observer interface {
	OnNext(record packstream.List)
	OnCompleted(metadata *packstream.Map)
	OnError(err error)
}

// Connection is the façade's sole collaborator: something that can
// accept PackStream writes, be told to flush or to fail fatally, and
// identify itself to the logger. The façade never reads from it
// directly — response routing belongs to the connection, not this
// codec (spec.md §6).
type Connection interface {
	packstream.Writer
	logger.Context
	// Flush sends everything written so far. Called once per request
	// per the "flush now" boolean the façade's own methods compute.
	Flush() error
	// MarkFatal tears the connection down after an unrecoverable error.
	MarkFatal(err error)
}

// MetadataTransformer rewrites a SUCCESS message's metadata before it
// reaches an Observer. v1's transformMetadata is the identity; later
// protocol versions override it (spec.md §4.5).
type MetadataTransformer func(m *packstream.Map) *packstream.Map

func identityMetadataTransformer(m *packstream.Map) *packstream.Map { return m }

// Facade implements the v1 request surface over one Connection. A
// Facade is not safe for concurrent use: one codec instance serves one
// connection, and the connection is used serially (spec.md §5).
type Facade struct {
	packer *packstream.Packer

	// TransformMetadata is applied by the connection to a SUCCESS
	// message's metadata before it reaches an Observer's OnCompleted.
	// Defaults to the identity transform.
	TransformMetadata MetadataTransformer
}

// NewFacade returns a Facade that packs requests with packer.
func NewFacade(packer *packstream.Packer) *Facade {
	return &Facade{packer: packer, TransformMetadata: identityMetadataTransformer}
}

// Initialize sends INIT and flushes immediately.
func (f *Facade) Initialize(conn Connection, clientName string, authToken *packstream.Map, observer Observer) error {
	if err := writeInit(f.packer, conn, clientName, authToken); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "INIT", true)
	return f.flush(conn, observer)
}

// Run sends RUN followed by PULL_ALL; only the second write flushes.
// bookmark is accepted but ignored in v1's RUN path — it has no
// parameter slot outside beginTransaction (spec.md §4.5). A non-empty
// txConfig is a fatal CapabilityError: v1 carries no transaction
// configuration fields at all.
func (f *Facade) Run(conn Connection, statement string, params *packstream.Map, bookmark string, txConfig *packstream.Map, observer Observer) error {
	if err := f.rejectTransactionConfig(conn, txConfig, observer); err != nil {
		return err
	}
	if params == nil {
		params = packstream.NewMap()
	}
	if err := writeRun(f.packer, conn, statement, params); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "RUN", false)
	if err := writePullAll(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "PULL_ALL", true)
	return f.flush(conn, observer)
}

// BeginTransaction sends RUN "BEGIN" {bookmarks} followed by PULL_ALL,
// both non-flushing — the transaction's first statement carries the
// flush (spec.md §4.5).
func (f *Facade) BeginTransaction(conn Connection, bookmark string, txConfig *packstream.Map, observer Observer) error {
	if err := f.rejectTransactionConfig(conn, txConfig, observer); err != nil {
		return err
	}
	params := packstream.NewMap()
	if bookmark != "" {
		params.Set("bookmarks", packstream.List{packstream.String(bookmark)})
	}
	if err := writeRun(f.packer, conn, "BEGIN", params); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "RUN", false)
	if err := writePullAll(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "PULL_ALL", false)
	return nil
}

// CommitTransaction sends RUN "COMMIT" followed by a flushing PULL_ALL.
func (f *Facade) CommitTransaction(conn Connection, observer Observer) error {
	return f.runBareStatement(conn, "COMMIT", observer)
}

// RollbackTransaction sends RUN "ROLLBACK" followed by a flushing PULL_ALL.
func (f *Facade) RollbackTransaction(conn Connection, observer Observer) error {
	return f.runBareStatement(conn, "ROLLBACK", observer)
}

func (f *Facade) runBareStatement(conn Connection, statement string, observer Observer) error {
	if err := writeRun(f.packer, conn, statement, packstream.NewMap()); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "RUN", false)
	if err := writePullAll(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "PULL_ALL", true)
	return f.flush(conn, observer)
}

// Reset sends RESET and flushes immediately.
func (f *Facade) Reset(conn Connection, observer Observer) error {
	if err := writeReset(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "RESET", true)
	return f.flush(conn, observer)
}

// AckFailure sends ACK_FAILURE and flushes immediately, clearing a
// FAILURE response so the connection can accept further requests.
func (f *Facade) AckFailure(conn Connection, observer Observer) error {
	if err := writeAckFailure(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "ACK_FAILURE", true)
	return f.flush(conn, observer)
}

// DiscardAll sends DISCARD_ALL and flushes immediately.
func (f *Facade) DiscardAll(conn Connection, observer Observer) error {
	if err := writeDiscardAll(f.packer, conn); err != nil {
		observer.OnError(err)
		return err
	}
	f.traceSent(conn, "DISCARD_ALL", true)
	return f.flush(conn, observer)
}

func (f *Facade) flush(conn Connection, observer Observer) error {
	if err := conn.Flush(); err != nil {
		observer.OnError(err)
		return err
	}
	return nil
}

// traceSent logs the one Trace line SPEC_FULL.md §3.1 requires per
// request message written: its name and whether this particular write
// carries the flush.
func (f *Facade) traceSent(conn Connection, message string, flush bool) {
	logger.Trace.Println(conn, fmt.Sprintf("%s written, flush=%t", message, flush))
}

// rejectTransactionConfig enforces v1's transaction-config precondition
// (spec.md §4.5): a non-empty txConfig fatally marks the connection,
// notifies the observer, and is returned to the caller.
func (f *Facade) rejectTransactionConfig(conn Connection, txConfig *packstream.Map, observer Observer) error {
	if txConfig == nil || txConfig.EncodedLen() == 0 {
		return nil
	}
	err := newTransactionConfigUnsupportedError()
	conn.MarkFatal(err)
	logger.Error.Println(conn, err)
	observer.OnError(err)
	return err
}
