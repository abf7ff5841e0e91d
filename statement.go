package mosespg

import "context"

// stmtState is the Prepared-Statement Coordinator's per-statement
// sub-state machine (SPEC_FULL.md §4.7): prepared, then bound/executed any
// number of times, until closed.
type stmtState int

const (
	stmtPrepared stmtState = iota
	stmtBound
	stmtClosed
)

// Statement is a server-side prepared statement plus the coordinator state
// needed to re-bind and re-execute it without re-parsing. A Statement is
// not safe for concurrent use by multiple goroutines; serialize calls the
// same way callers must serialize any other sequence of operations against
// one Conn.
type Statement struct {
	conn *Conn
	name string
	sql  string

	paramOIDs []int32
	columns   []ColumnDescriptor

	portalName string
	state      stmtState
	boundTx    *TxHandle
	suspended  bool
}

// ColumnDescriptor mirrors wire.ColumnDescriptor for callers that shouldn't
// need to import the wire package directly.
type ColumnDescriptor struct {
	Name         string
	TableOID     int32
	AttrNum      int16
	TypeOID      int32
	TypeLength   int16
	TypeModifier int32
	Format       int16
}

// ParameterOIDs returns the server-inferred type OID of each parameter.
func (s *Statement) ParameterOIDs() []int32 { return s.paramOIDs }

// Columns returns the result column metadata, nil for statements that
// produce no rows.
func (s *Statement) Columns() []ColumnDescriptor { return s.columns }

// Prepare parses sql on conn and describes it, returning a Statement ready
// to be bound and executed any number of times. oidHints may supply known
// parameter type OIDs, or be nil/short to let the server infer the rest.
// tx scopes the whole sequence to an in-progress Transaction, or nil.
func Prepare(ctx context.Context, conn *Conn, sql string, oidHints []uint32, tx *TxHandle) (*Statement, error) {
	name := conn.nextStatementName()

	parseCh := make(chan *waiterOutcome, 1)
	if !conn.sendSubmission(ctx, &submission{
		kind:     opParse,
		tx:       tx,
		dispatch: conn.dispatchParse(name, sql, oidHints),
		finish:   func(_ *Conn, o *waiterOutcome) { parseCh <- o },
	}) {
		return nil, ctxOrClosedErr(ctx, conn)
	}
	if o, err := conn.waitOutcome(ctx, parseCh); err != nil {
		return nil, err
	} else if o.err != nil {
		return nil, o.err
	}

	descCh := make(chan *waiterOutcome, 1)
	if !conn.sendSubmission(ctx, &submission{
		kind:     opDescribeStatement,
		tx:       tx,
		dispatch: conn.dispatchDescribeStatement(name),
		finish:   func(_ *Conn, o *waiterOutcome) { descCh <- o },
	}) {
		return nil, ctxOrClosedErr(ctx, conn)
	}

	outcome, err := conn.waitOutcome(ctx, descCh)
	if err != nil {
		return nil, err
	}
	if outcome.err != nil {
		return nil, outcome.err
	}

	return &Statement{
		conn:      conn,
		name:      name,
		sql:       sql,
		paramOIDs: outcome.paramOIDs,
		columns:   toColumnDescriptors(outcome.columns),
		state:     stmtPrepared,
	}, nil
}

// Execute binds params (with paramFormats/resultFormats per
// wire.ValidateFormatCodes' rules) to a fresh portal and runs it, returning
// at most maxRows rows (0 for unlimited). A non-zero maxRows that exhausts
// before the portal is done returns suspended=true; a later Execute call
// with the same tx resumes that same portal without re-binding, the way
// pulling more rows from a suspended portal works on the wire — any other
// call (a different tx, or after a completed portal) binds a fresh one. A
// resuming call does not send params, paramFormats or resultFormats, and
// does not compare them with the ones the portal was bound with. tx must match whatever handle, if any, scoped the
// statement's Prepare call.
func (s *Statement) Execute(ctx context.Context, params [][]byte, paramFormats, resultFormats []int16, maxRows uint32, tx *TxHandle) (result *Result, suspended bool, err error) {
	if s.state == stmtClosed {
		return nil, false, ErrStatementAlreadyClosed
	}
	if err := validateFormatCodes(paramFormats, len(params)); err != nil {
		return nil, false, err
	}
	if err := validateFormatCodes(resultFormats, len(s.columns)); err != nil {
		return nil, false, err
	}

	resume := s.state == stmtBound && s.suspended && s.boundTx == tx

	if !resume {
		if s.state == stmtBound && !s.portalAutoClosed() {
			if err := s.closePortal(ctx, tx); err != nil {
				return nil, false, err
			}
		}

		portal := s.conn.nextPortalName(s.name)

		bindCh := make(chan *waiterOutcome, 1)
		if !s.conn.sendSubmission(ctx, &submission{
			kind:     opBind,
			tx:       tx,
			dispatch: s.conn.dispatchBind(portal, s.name, paramFormats, params, resultFormats),
			finish:   func(_ *Conn, o *waiterOutcome) { bindCh <- o },
		}) {
			return nil, false, ctxOrClosedErr(ctx, s.conn)
		}
		o, err := s.conn.waitOutcome(ctx, bindCh)
		if err != nil {
			return nil, false, err
		}
		if o.err != nil {
			return nil, false, o.err
		}

		s.portalName = portal
		s.state = stmtBound
		s.boundTx = tx
	}

	execCh := make(chan *waiterOutcome, 1)
	if !s.conn.sendSubmission(ctx, &submission{
		kind:     opExecute,
		tx:       tx,
		dispatch: s.conn.dispatchExecute(s.portalName, maxRows),
		finish:   func(_ *Conn, o *waiterOutcome) { execCh <- o },
	}) {
		return nil, false, ctxOrClosedErr(ctx, s.conn)
	}

	outcome, err := s.conn.waitOutcome(ctx, execCh)
	if err != nil {
		return nil, false, err
	}

	if outcome.err == nil {
		s.suspended = outcome.suspended
	}

	if outcome.result != nil {
		outcome.result.setColumns(toWireColumns(s.columns))
	}
	return outcome.result, outcome.suspended, outcome.err
}

// portalAutoClosed reports whether the currently bound portal will be
// cleaned up by the server itself when the transaction it was bound under
// ends, making an explicit ClosePortal before re-binding redundant.
func (s *Statement) portalAutoClosed() bool {
	return s.boundTx != nil && s.boundTx == s.conn.curTx && s.conn.txPhase != txNone
}

func (s *Statement) closePortal(ctx context.Context, tx *TxHandle) error {
	ch := make(chan *waiterOutcome, 1)
	if !s.conn.sendSubmission(ctx, &submission{
		kind:     opClosePortal,
		tx:       tx,
		dispatch: s.conn.dispatchClosePortal(s.portalName),
		finish:   func(_ *Conn, o *waiterOutcome) { ch <- o },
	}) {
		return ctxOrClosedErr(ctx, s.conn)
	}
	o, err := s.conn.waitOutcome(ctx, ch)
	if err != nil {
		return err
	}
	return o.err
}

// Close closes the prepared statement server-side (and, implicitly, its
// last bound portal). Closing an already-closed Statement is a no-op.
func (s *Statement) Close(ctx context.Context, tx *TxHandle) error {
	if s.state == stmtClosed {
		return nil
	}

	ch := make(chan *waiterOutcome, 1)
	if !s.conn.sendSubmission(ctx, &submission{
		kind:     opCloseStatement,
		tx:       tx,
		dispatch: s.conn.dispatchCloseStatement(s.name),
		finish:   func(_ *Conn, o *waiterOutcome) { ch <- o },
	}) {
		return ctxOrClosedErr(ctx, s.conn)
	}

	o, err := s.conn.waitOutcome(ctx, ch)
	if err != nil {
		return err
	}
	if o.err == nil {
		s.state = stmtClosed
	}
	return o.err
}
