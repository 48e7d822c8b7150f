package bolt_test

import (
	"testing"

	"github.com/boltstream/packstream/bolt"
	"github.com/boltstream/packstream/packstream"
	"github.com/boltstream/packstream/packstream/bufchannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	*bufchannel.Buffer
	cid      int
	flushes  int
	fatalErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{Buffer: bufchannel.New(), cid: 1}
}

func (c *fakeConn) Cid() int { return c.cid }

func (c *fakeConn) Flush() error {
	c.flushes++
	return nil
}

func (c *fakeConn) MarkFatal(err error) {
	c.fatalErr = err
}

type fakeObserver struct {
	records   []packstream.List
	completed *packstream.Map
	err       error
}

func (o *fakeObserver) OnNext(record packstream.List)        { o.records = append(o.records, record) }
func (o *fakeObserver) OnCompleted(metadata *packstream.Map) { o.completed = metadata }
func (o *fakeObserver) OnError(err error)                    { o.err = err }

func TestInitializeFlushesOnce(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	auth := packstream.NewMap()
	auth.Set("scheme", packstream.String("basic"))
	require.NoError(t, f.Initialize(conn, "boltstream-client/1.0", auth, obs))

	assert.Equal(t, 1, conn.flushes)
	assert.Nil(t, obs.err)

	got := conn.Bytes()
	assert.Equal(t, byte(0xB2), got[0])
	assert.Equal(t, packstream.SignatureInit, got[1])
}

func TestRunFlushesOnlyAfterPullAll(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	params := packstream.NewMap()
	require.NoError(t, f.Run(conn, "RETURN 1", params, "", nil, obs))

	assert.Equal(t, 1, conn.flushes)

	got := conn.Bytes()
	// RUN header: TinyStruct(2), signature 0x10.
	assert.Equal(t, byte(0xB2), got[0])
	assert.Equal(t, packstream.SignatureRun, got[1])
}

func TestRunRejectsNonEmptyTransactionConfig(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	txConfig := packstream.NewMap()
	txConfig.Set("timeout", packstream.Int(5000))

	err := f.Run(conn, "RETURN 1", packstream.NewMap(), "", txConfig, obs)
	require.Error(t, err)

	var capErr *bolt.CapabilityError
	assert.ErrorAs(t, err, &capErr)
	assert.NotNil(t, conn.fatalErr)
	assert.Equal(t, err, obs.err)
	assert.Empty(t, conn.Bytes(), "no bytes should be written once config is rejected")
}

func TestRunAcceptsEmptyTransactionConfig(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	err := f.Run(conn, "RETURN 1", packstream.NewMap(), "", packstream.NewMap(), obs)
	require.NoError(t, err)
	assert.Nil(t, conn.fatalErr)
}

func TestBeginTransactionDoesNotFlush(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	require.NoError(t, f.BeginTransaction(conn, "bookmark-1", nil, obs))
	assert.Equal(t, 0, conn.flushes)
	assert.NotEmpty(t, conn.Bytes())
}

func TestCommitTransactionFlushes(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	require.NoError(t, f.CommitTransaction(conn, obs))
	assert.Equal(t, 1, conn.flushes)
}

func TestResetFlushesImmediately(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	conn := newFakeConn()
	obs := &fakeObserver{}

	require.NoError(t, f.Reset(conn, obs))
	assert.Equal(t, 1, conn.flushes)
	assert.Equal(t, []byte{0xB0, packstream.SignatureReset}, conn.Bytes())
}

func TestMetadataTransformDefaultsToIdentity(t *testing.T) {
	f := bolt.NewFacade(packstream.NewPacker(true))
	m := packstream.NewMap()
	m.Set("fields", packstream.List{packstream.String("n")})
	assert.Same(t, m, f.TransformMetadata(m))
}
