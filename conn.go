// Package mosespg is an asynchronous PostgreSQL client speaking the
// frontend/backend wire protocol version 3.0 directly (SPEC_FULL.md §1).
// Conn is the façade: it owns the framing buffer, the message codec,
// the session and transaction state machines, and the per-connection
// command queue, and exposes Execute, Transaction and Close to callers;
// the package-level Prepare creates prepared statements on a Conn.
package mosespg

import (
	"context"
	"crypto/tls"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jec/moses-pg/internal/ctxwatch"
	"github.com/jec/moses-pg/protoerr"
	"github.com/jec/moses-pg/tracelog"
	"github.com/jec/moses-pg/wire"
)

// ErrTLSRefused is returned by Connect when TLSConfig is set but the server
// declines to negotiate TLS.
var ErrTLSRefused = errors.New("mosespg: server refused TLS connection")

// Conn is a single PostgreSQL connection. All of its mutable state (session
// state, queues, the in-flight operation, the accumulating Result) is
// owned exclusively by its engine goroutine; callers only ever reach it
// through channel sends from Execute/Prepare/Transaction/Close, matching
// SPEC_FULL.md §5's "external callers must not mutate these directly."
type Conn struct {
	cfg Config
	nc  net.Conn
	fe  *wire.Frontend

	state sessionState

	pid       uint32
	secretKey uint32
	params    map[string]string

	inFlight     *submission
	curKind      opKind
	result       *Result
	group        *ResultGroup
	curColumns   []wire.ColumnDescriptor
	curParamOIDs []int32

	thisTxQ []*submission
	nextTxQ []*submission
	txPhase txPhase
	curTx   *TxHandle

	stmtCounter   uint64
	portalCounter uint64

	submissions chan *submission
	control     chan func(*Conn)
	inbound     chan inboundEvent

	closeOnce sync.Once
	closed    chan struct{}

	connectWaiter chan error
}

type inboundEvent struct {
	msg wire.BackendMessage
	err error
}

// Connect dials cfg.Host:cfg.Port (or a unix socket), runs the startup and
// authentication handshake, and returns a ready Conn. It blocks until the
// handshake's first ReadyForQuery arrives or ctx is done.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.User == "" {
		if u, err := user.Current(); err == nil {
			cfg.User = u.Username
		}
	}

	network, address := networkAddress(cfg.Host, cfg.Port)
	nc, err := cfg.dial(network, address)
	if err != nil {
		return nil, err
	}

	if cfg.TLSConfig != nil {
		nc, err = startTLS(nc, cfg.TLSConfig)
		if err != nil {
			nc.Close()
			return nil, err
		}
	}

	c := &Conn{
		cfg:           cfg,
		nc:            nc,
		fe:            wire.NewFrontend(),
		state:         stateStartup,
		params:        make(map[string]string),
		submissions:   make(chan *submission),
		control:       make(chan func(*Conn)),
		inbound:       make(chan inboundEvent, 16),
		closed:        make(chan struct{}),
		connectWaiter: make(chan error, 1),
	}

	startupBytes := wire.EncodeOrdered(nil, wire.ProtocolVersionNumber, cfg.User, cfg.Database, nil)
	if _, err := nc.Write(startupBytes); err != nil {
		nc.Close()
		return nil, err
	}

	go c.readLoop()
	go c.run()

	select {
	case err := <-c.connectWaiter:
		if err != nil {
			c.Close(ctx)
			return nil, err
		}
		return c, nil
	case <-ctx.Done():
		c.Close(context.Background())
		return nil, ctx.Err()
	}
}

func networkAddress(host string, port uint16) (network, address string) {
	if _, err := os.Stat(host); err == nil {
		network = "unix"
		address = host
		if !strings.Contains(address, "/.s.PGSQL.") {
			address = filepath.Join(address, ".s.PGSQL.") + strconv.FormatUint(uint64(port), 10)
		}
		return network, address
	}
	return "tcp", net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
}

func startTLS(nc net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], 8)
	binary.BigEndian.PutUint32(buf[4:8], 80877103) // SSLRequest magic code
	if _, err := nc.Write(buf[:]); err != nil {
		return nil, err
	}

	resp := make([]byte, 1)
	if _, err := io.ReadFull(nc, resp); err != nil {
		return nil, err
	}
	if resp[0] != 'S' {
		return nil, ErrTLSRefused
	}

	return tls.Client(nc, tlsConfig), nil
}

// readLoop is the only goroutine that reads the socket. It decodes frames
// as they complete and forwards each message to the engine goroutine,
// never blocking on anything but the channel send and the closed signal.
func (c *Conn) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := c.nc.Read(buf)
		if n > 0 {
			msgs, decodeErr := c.fe.Feed(buf[:n])
			for _, m := range msgs {
				select {
				case c.inbound <- inboundEvent{msg: m}:
				case <-c.closed:
					return
				}
			}
			if decodeErr != nil {
				select {
				case c.inbound <- inboundEvent{err: decodeErr}:
				case <-c.closed:
				}
				return
			}
		}
		if err != nil {
			select {
			case c.inbound <- inboundEvent{err: err}:
			case <-c.closed:
			}
			return
		}
	}
}

// run is the engine goroutine: the single logical thread of progress
// SPEC_FULL.md §5 requires. Every state transition, queue mutation and
// waiter completion happens here and nowhere else.
func (c *Conn) run() {
	for {
		select {
		case ev, ok := <-c.inbound:
			if !ok {
				return
			}
			if ev.err != nil {
				c.handleTransportError(ev.err)
				return
			}
			c.handleBackendMessage(ev.msg)
		case sub := <-c.submissions:
			c.submit(sub)
		case fn := <-c.control:
			fn(c)
		case <-c.closed:
			return
		}
	}
}

func (c *Conn) handleTransportError(err error) {
	c.cfg.log(c, tracelog.LogLevelError, "transport error", map[string]any{"err": err})
	pe := &protoerr.PgError{Severity: "FATAL", Message: err.Error()}
	switch c.state {
	case stateStartup, stateAuthorizing, stateReceiveServerData:
		c.completeConnect(pe)
	default:
		c.failInFlightWithPartial(pe)
	}
	c.state = stateConnectionFailed
}

func (c *Conn) writeOutbound() error {
	b := c.fe.TakeOutbound()
	if len(b) == 0 {
		return nil
	}
	_, err := c.nc.Write(b)
	return err
}

func (c *Conn) completeConnect(err error) {
	select {
	case c.connectWaiter <- err:
	default:
	}
}

// sendSubmission hands sub to the engine goroutine, to be dispatched
// immediately if the session is ready and no operation is queued ahead of
// it, or enqueued otherwise (SPEC_FULL.md §4.5).
func (c *Conn) sendSubmission(ctx context.Context, sub *submission) bool {
	select {
	case c.submissions <- sub:
		return true
	case <-ctx.Done():
		return false
	case <-c.closed:
		return false
	}
}

// sendControl runs fn on the engine goroutine ahead of any queued
// operation. It is used for actions that are not themselves wire
// operations — starting and ending a transaction's queue bookkeeping.
func (c *Conn) sendControl(ctx context.Context, fn func(*Conn)) bool {
	select {
	case c.control <- fn:
		return true
	case <-ctx.Done():
		return false
	case <-c.closed:
		return false
	}
}

// Execute runs sql as a Simple Query. sql may contain multiple
// semicolon-separated statements; the returned ResultGroup has one Result
// per statement, in order. tx scopes the submission to an in-progress
// Transaction; pass nil outside of one.
func (c *Conn) Execute(ctx context.Context, sql string, tx *TxHandle) (*ResultGroup, error) {
	ch := make(chan *waiterOutcome, 1)
	sub := &submission{
		kind:     opSimpleQuery,
		tx:       tx,
		dispatch: c.dispatchSimpleQuery(sql),
		finish:   func(_ *Conn, o *waiterOutcome) { ch <- o },
	}
	if !c.sendSubmission(ctx, sub) {
		return nil, ctxOrClosedErr(ctx, c)
	}

	o, err := c.waitOutcome(ctx, ch)
	if err != nil {
		return nil, err
	}
	return o.group, o.err
}

func ctxOrClosedErr(ctx context.Context, c *Conn) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
		return ctx.Err()
	}
}

// waitOutcome blocks for ch, ctx, or the connection closing, whichever comes
// first. While it waits, a ContextWatcher private to this call watches ctx;
// if ctx is canceled while an operation is genuinely in flight on the wire
// (not merely queued), there is no way to abandon just that one exchange
// without corrupting the protocol state for whatever else is queued behind
// it, so — matching the teacher's own contextWatcher use — cancellation
// closes the transport outright. The transport is closed on any
// cancellation during the wait, whether the operation is in flight or
// still queued. A per-call watcher, rather than one shared
// on Conn, is required here because this engine (unlike the teacher's
// single-flight PgConn) lets multiple goroutines have submissions
// in flight at once; a shared watcher would panic on concurrent Watch calls.
func (c *Conn) waitOutcome(ctx context.Context, ch <-chan *waiterOutcome) (*waiterOutcome, error) {
	cw := ctxwatch.NewContextWatcher(func() { c.nc.Close() }, func() {})
	cw.Watch(ctx)
	defer cw.Unwatch()

	select {
	case o := <-ch:
		return o, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, ErrConnClosed
	}
}

// Close terminates the connection gracefully: it sends Terminate and closes
// the transport. Safe to call more than once.
func (c *Conn) Close(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case c.control <- func(c *Conn) {
		c.fe.Send(&wire.Terminate{})
		c.writeOutbound()
		close(done)
	}:
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
		}
	case <-c.closed:
	case <-time.After(2 * time.Second):
	}

	c.closeOnce.Do(func() {
		close(c.closed)
		c.nc.Close()
	})
	return nil
}

// PID and SecretKey return the backend key data needed to build a
// CancelRequest on a separate connection (SPEC_FULL.md §4.8).
func (c *Conn) PID() uint32       { return c.pid }
func (c *Conn) SecretKey() uint32 { return c.secretKey }

// Param returns a ParameterStatus value the server has reported, such as
// "server_version" or "TimeZone".
func (c *Conn) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Trace starts dumping every frame crossing the wire to w, independently of
// whatever tracelog.Logger cfg.Logger is also sending diagnostics to
// (SPEC_FULL.md §4.9.2). Callers must not call Trace/Untrace concurrently
// with Connect, since the underlying Frontend is only ever touched from the
// engine goroutine after that point — call it before issuing the first
// Execute/Prepare/Transaction, or serialize it via a control submission.
func (c *Conn) Trace(w io.Writer, suppressTimestamps bool) {
	c.fe.Trace(w, suppressTimestamps)
}

// Untrace stops a Trace started earlier.
func (c *Conn) Untrace() {
	c.fe.Untrace()
}

// DescribePortal returns the result column metadata of an already-bound
// portal. Statement.Execute never needs this itself (a statement's columns
// are already known from Prepare's DescribeStatement), but it is part of
// the wire protocol's Describe repertoire and is useful for a portal bound
// against the unnamed statement, which Prepare is never called for.
func (c *Conn) DescribePortal(ctx context.Context, portal string, tx *TxHandle) ([]ColumnDescriptor, error) {
	ch := make(chan *waiterOutcome, 1)
	if !c.sendSubmission(ctx, &submission{
		kind:     opDescribePortal,
		tx:       tx,
		dispatch: c.dispatchDescribePortal(portal),
		finish:   func(_ *Conn, o *waiterOutcome) { ch <- o },
	}) {
		return nil, ctxOrClosedErr(ctx, c)
	}

	o, err := c.waitOutcome(ctx, ch)
	if err != nil {
		return nil, err
	}
	if o.err != nil {
		return nil, o.err
	}
	return toColumnDescriptors(o.columns), nil
}

func (c *Conn) nextStatementName() string {
	n := atomic.AddUint64(&c.stmtCounter, 1)
	return fmt.Sprintf("stmt_%x", n)
}

func (c *Conn) nextPortalName(stmtName string) string {
	n := atomic.AddUint64(&c.portalCounter, 1)
	return fmt.Sprintf("port_%s_%x", stmtName, n)
}

// Cancel opens a brand-new connection to host:port and sends a
// CancelRequest for pid/secret, as spec.md §4.8 and §6 describe: the v3
// protocol has no in-band cancellation, only this out-of-band request on a
// second connection that closes immediately after sending it.
func Cancel(ctx context.Context, cfg Config, pid, secret uint32) error {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	network, address := networkAddress(cfg.Host, cfg.Port)
	nc, err := cfg.dial(network, address)
	if err != nil {
		return err
	}
	defer nc.Close()

	if dl, ok := ctx.Deadline(); ok {
		nc.SetWriteDeadline(dl)
	}

	req := &wire.CancelRequest{ProcessID: pid, SecretKey: secret}
	_, err = nc.Write(req.Encode(nil))
	return err
}
