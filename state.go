package mosespg

import (
	"fmt"

	"github.com/jec/moses-pg/protoerr"
	"github.com/jec/moses-pg/tracelog"
	"github.com/jec/moses-pg/wire"
)

// sessionState is the engine's session/command state machine
// (SPEC_FULL.md §4.4). Exactly one Conn goroutine ever reads or writes it.
type sessionState int

const (
	stateStartup sessionState = iota
	stateAuthorizing
	stateReceiveServerData
	stateReady
	stateQueryInProgress
	stateRowsetQueryInProgress
	stateEmptyQueryInProgress
	stateParseInProgress
	stateBindInProgress
	stateStatementDescribeInProgress
	statePortalDescribeInProgress
	stateExecuteInProgress
	stateClosePortalInProgress
	stateCloseStatementInProgress
	stateSyncing
	stateQueryFailed
	stateParseFailed
	// stateDescribeFailed is a deliberate merge of the literal transition
	// table's separate statement-describe-failed and portal-describe-failed
	// states: both error paths recover identically (failInFlightWithPartial
	// then a uniform Sync), so splitting them would add a state with no
	// behavioral difference from its sibling.
	stateDescribeFailed
	stateBindFailed
	stateExecuteFailed
	stateClosePortalFailed
	stateCloseStatementFailed
	stateConnectionFailed
	stateUnsupportedAuthMethod
)

// opKind distinguishes the eight shapes of operation the engine can have
// in flight, each with its own accumulator reset and outcome shape.
type opKind int

const (
	opSimpleQuery opKind = iota
	opParse
	opBind
	opDescribeStatement
	opDescribePortal
	opExecute
	opClosePortal
	opCloseStatement
)

// waiterOutcome is what a submission's finish callback receives once its
// operation completes, successfully or not.
type waiterOutcome struct {
	result    *Result
	group     *ResultGroup
	columns   []wire.ColumnDescriptor
	paramOIDs []int32
	suspended bool
	err       error
}

// handleBackendMessage is the single entry point for every decoded
// BackendMessage, dispatching by concrete type to the handler that knows
// which states it is meaningful in.
func (c *Conn) handleBackendMessage(msg wire.BackendMessage) {
	switch m := msg.(type) {
	case *wire.Authentication:
		c.handleAuthentication(m)
	case *wire.BackendKeyData:
		c.pid, c.secretKey = m.ProcessID, m.SecretKey
	case *wire.ParameterStatus:
		c.params[m.Name] = m.Value
	case *wire.NoticeResponse:
		c.handleNotice(m)
	case *wire.ErrorResponse:
		c.handleErrorResponse(m)
	case *wire.ReadyForQuery:
		c.handleReadyForQuery(m)
	case *wire.ParseComplete:
		if c.state == stateParseInProgress {
			c.enterReady()
		}
	case *wire.BindComplete:
		if c.state == stateBindInProgress {
			c.enterReady()
		}
	case *wire.CloseComplete:
		if c.state == stateClosePortalInProgress || c.state == stateCloseStatementInProgress {
			c.enterReady()
		}
	case *wire.ParameterDescription:
		if c.state == stateStatementDescribeInProgress {
			c.curParamOIDs = m.ParameterOIDs
		}
	case *wire.RowDescription:
		c.handleRowDescription(m)
	case *wire.NoData:
		c.handleNoData()
	case *wire.DataRow:
		c.handleDataRow(m)
	case *wire.PortalSuspended:
		c.handlePortalSuspended()
	case *wire.EmptyQueryResponse:
		c.handleEmptyQueryResponse()
	case *wire.CommandComplete:
		c.handleCommandComplete(m)
	case *wire.CopyInResponse:
		c.failCurrentOp(ErrCopyUnsupported)
	case *wire.CopyOutResponse:
		c.failCurrentOp(ErrCopyUnsupported)
	case *wire.CopyBothResponse:
		c.failCurrentOp(ErrCopyUnsupported)
	case *wire.FunctionCallResponse:
		c.failCurrentOp(ErrFastPathUnsupported)
	case *wire.NegotiateProtocolVersion:
		c.state = stateConnectionFailed
		c.completeConnect(fmt.Errorf("mosespg: server requires protocol downgrade to minor version %d, not supported", m.NewestMinorProtocol))
	}
}

func (c *Conn) handleAuthentication(m *wire.Authentication) {
	switch m.Type {
	case wire.AuthTypeOk:
		if c.state == stateStartup || c.state == stateAuthorizing {
			c.state = stateReceiveServerData
		}
	case wire.AuthTypeCleartext:
		if c.state == stateStartup {
			c.state = stateAuthorizing
			c.fe.Send(&wire.PasswordMessage{Password: c.cfg.Password})
			c.writeOutbound()
		}
	case wire.AuthTypeMD5:
		if c.state == stateStartup {
			c.state = stateAuthorizing
			pw := wire.MD5Password(c.cfg.User, c.cfg.Password, m.Salt)
			c.fe.Send(&wire.PasswordMessage{Password: pw})
			c.writeOutbound()
		}
	default:
		c.state = stateUnsupportedAuthMethod
		c.completeConnect(fmt.Errorf("mosespg: unsupported authentication method %d", m.Type))
	}
}

func (c *Conn) handleNotice(m *wire.NoticeResponse) {
	fields := protoerr.NoticeFields(m.Fields)
	switch {
	case c.group != nil:
		c.group.Current().addNotice(fields)
	case c.result != nil:
		c.result.addNotice(fields)
	}
}

// handleErrorResponse implements the redesign decision recorded in
// DESIGN.md for the extended-query error states: every one of them sends a
// single Sync and waits for the ReadyForQuery it elicits, rather than the
// per-state "failed" holding pattern the literal transition table
// describes, so the session always has exactly one way back to ready.
func (c *Conn) handleErrorResponse(m *wire.ErrorResponse) {
	pe := protoerr.FromFields(m.Fields)

	switch c.state {
	case stateStartup, stateAuthorizing:
		c.state = stateConnectionFailed
		c.completeConnect(pe)
	case stateQueryInProgress, stateRowsetQueryInProgress, stateEmptyQueryInProgress:
		c.state = stateQueryFailed
		c.failInFlightWithPartial(pe)
	case stateParseInProgress:
		c.state = stateParseFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	case stateBindInProgress:
		c.state = stateBindFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	case stateStatementDescribeInProgress, statePortalDescribeInProgress:
		c.state = stateDescribeFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	case stateExecuteInProgress:
		c.state = stateExecuteFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	case stateClosePortalInProgress:
		c.state = stateClosePortalFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	case stateCloseStatementInProgress:
		c.state = stateCloseStatementFailed
		c.failInFlightWithPartial(pe)
		c.sendSyncAndResync()
	}
}

func (c *Conn) sendSyncAndResync() {
	c.fe.Send(&wire.Sync{})
	c.writeOutbound()
	c.state = stateSyncing
}

func (c *Conn) handleReadyForQuery(m *wire.ReadyForQuery) {
	switch c.state {
	case stateReceiveServerData:
		c.state = stateReady
		c.completeConnect(nil)
	case stateQueryInProgress, stateEmptyQueryInProgress, stateQueryFailed, stateSyncing:
		c.enterReady()
	}
}

func (c *Conn) handleRowDescription(m *wire.RowDescription) {
	switch c.state {
	case stateQueryInProgress, stateRowsetQueryInProgress:
		c.state = stateRowsetQueryInProgress
		c.group.pushIfFinished().setColumns(m.Columns)
	case stateStatementDescribeInProgress, statePortalDescribeInProgress:
		c.curColumns = m.Columns
		c.enterReady()
	}
}

func (c *Conn) handleNoData() {
	switch c.state {
	case stateStatementDescribeInProgress, statePortalDescribeInProgress:
		c.curColumns = nil
		c.enterReady()
	}
}

func (c *Conn) handleDataRow(m *wire.DataRow) {
	switch c.state {
	case stateQueryInProgress, stateRowsetQueryInProgress:
		c.state = stateRowsetQueryInProgress
		c.group.pushIfFinished().appendRow(m.Values)
	case stateExecuteInProgress:
		c.result.appendRow(m.Values)
	}
}

// handlePortalSuspended treats a suspended Execute as complete rather than
// the literal table's self-loop: see DESIGN.md for why a self-loop here
// would leave the engine with no way to dispatch the next queued
// operation, since nothing would ever re-enter ready.
func (c *Conn) handlePortalSuspended() {
	if c.state != stateExecuteInProgress {
		return
	}
	c.finishInFlight(true)
}

func (c *Conn) handleEmptyQueryResponse() {
	switch c.state {
	case stateQueryInProgress:
		c.state = stateEmptyQueryInProgress
	case stateExecuteInProgress:
		c.finishInFlight(false)
	}
}

func (c *Conn) handleCommandComplete(m *wire.CommandComplete) {
	switch c.state {
	case stateQueryInProgress, stateRowsetQueryInProgress:
		c.group.pushIfFinished().finish(m.CommandTag)
		c.state = stateQueryInProgress
	case stateExecuteInProgress:
		c.result.finish(m.CommandTag)
		c.finishInFlight(false)
	}
}

func (c *Conn) failCurrentOp(err error) {
	if c.inFlight == nil {
		return
	}
	c.failInFlightWithPartial(err)
}

// finishInFlight completes the in-flight Execute submission on one of its
// terminal messages (CommandComplete, EmptyQueryResponse, PortalSuspended)
// and returns to ready immediately: Execute is followed by Flush, not Sync,
// so no ReadyForQuery comes after it. Parse/Bind/Describe/Close likewise
// complete on their own terminal messages, but through enterReady.
func (c *Conn) finishInFlight(suspended bool) {
	completing := c.inFlight
	var outcome *waiterOutcome
	if completing != nil {
		outcome = &waiterOutcome{result: c.result, suspended: suspended}
	}

	c.state = stateReady
	c.inFlight = nil
	c.result = nil

	c.drainOne()

	if completing != nil {
		completing.finish(c, outcome)
	}
}

// enterReady finalizes the in-flight submission on the way back to ready
// after a ReadyForQuery or a terminal Parse/Bind/Describe/Close message,
// draining the next queued submission before delivering the outcome so the
// next command begins before the caller is ever woken (SPEC_FULL.md §4.5's
// "asynchronous, scheduled after queue dispatch").
func (c *Conn) enterReady() {
	completing := c.inFlight
	var outcome *waiterOutcome
	if completing != nil {
		switch c.curKind {
		case opSimpleQuery:
			outcome = &waiterOutcome{group: c.group}
		case opDescribeStatement, opDescribePortal:
			outcome = &waiterOutcome{columns: c.curColumns, paramOIDs: c.curParamOIDs}
		default:
			outcome = &waiterOutcome{result: c.result}
		}
	}

	c.state = stateReady
	c.inFlight = nil
	c.result = nil
	c.group = nil
	c.curColumns = nil
	c.curParamOIDs = nil

	c.drainOne()

	if completing != nil {
		completing.finish(c, outcome)
	}
}

// failInFlightWithPartial fails the in-flight submission's waiter
// immediately, with whatever partial Result/ResultGroup had already
// accumulated (SPEC_FULL.md §4.4's "fail the in-flight waiter with a
// structured PgError and whatever partial Result exists").
func (c *Conn) failInFlightWithPartial(err error) {
	completing := c.inFlight
	if completing == nil {
		c.cfg.log(c, tracelog.LogLevelDebug, "error with no in-flight operation", map[string]any{"err": err})
		return
	}

	outcome := &waiterOutcome{err: err}
	switch c.curKind {
	case opSimpleQuery:
		outcome.group = c.group
	default:
		outcome.result = c.result
	}

	c.inFlight = nil
	c.result = nil
	c.group = nil
	completing.finish(c, outcome)
}
