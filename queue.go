package mosespg

// submission is one pending or in-flight operation: everything the engine
// needs to dispatch it once it's its turn, and everything it needs to wake
// whoever is waiting on it once it completes. SPEC_FULL.md §4.5/§4.6 call
// this the Command Queue's unit of work.
type submission struct {
	kind opKind
	tx   *TxHandle

	// dispatch sends the wire message(s) for this operation and sets the
	// session state accordingly. Called exactly once, from the engine
	// goroutine, at the moment the operation becomes current.
	dispatch func(c *Conn)

	// finish delivers the outcome to whoever is waiting (a buffered
	// channel send, never blocking). Called exactly once, from the engine
	// goroutine, once the operation's result is fully known.
	finish func(c *Conn, o *waiterOutcome)
}

// txPhase is the transaction state machine (SPEC_FULL.md §4.6):
// none -> start_pending -> active -> (commit_pending | rollback_pending) -> none.
type txPhase int

const (
	txNone txPhase = iota
	txStartPending
	txActive
	txCommitPending
	txRollbackPending
)

// TxHandle identifies one in-progress transaction. It carries no state of
// its own — it is only a token submissions carry so the engine can tell
// "belongs to this transaction" from "belongs to whatever comes after it."
// The blank field gives it a non-zero size, so every handle has its own
// address and pointer comparison tells handles apart.
type TxHandle struct{ _ byte }

// runNow makes sub the in-flight operation: it resets the per-kind result
// accumulator, then calls sub.dispatch. Both submit (the ready, empty-queue
// path) and drainOne (the queued path) funnel through here so the reset
// logic lives in exactly one place.
func (c *Conn) runNow(sub *submission) {
	c.inFlight = sub
	c.curKind = sub.kind

	switch sub.kind {
	case opSimpleQuery:
		c.group = newResultGroup()
		c.result = nil
	case opExecute:
		c.result = newResult()
		c.group = nil
	default:
		c.result = nil
		c.group = nil
	}
	c.curColumns = nil
	c.curParamOIDs = nil

	sub.dispatch(c)
}

// routeQueue implements the dual-queue routing of SPEC_FULL.md §4.6: with
// no transaction in progress everything lands in this_tx_q; once one is
// under way, submissions carrying its TxHandle still join this_tx_q while
// everything else is deferred to next_tx_q until the transaction ends.
func (c *Conn) routeQueue(tx *TxHandle) *[]*submission {
	if c.txPhase == txNone {
		return &c.thisTxQ
	}
	if tx != nil && tx == c.curTx {
		return &c.thisTxQ
	}
	return &c.nextTxQ
}

// submit routes sub to its queue and, if the session is ready and nothing
// is ahead of it, dispatches it immediately.
func (c *Conn) submit(sub *submission) {
	q := c.routeQueue(sub.tx)
	if c.state == stateReady && q == &c.thisTxQ && len(c.thisTxQ) == 0 {
		c.runNow(sub)
		return
	}
	*q = append(*q, sub)
}

// drainOne dispatches the next queued submission in this_tx_q, if any. It
// must only be called when the session has just become ready and nothing
// is in flight.
func (c *Conn) drainOne() {
	if len(c.thisTxQ) == 0 {
		return
	}
	sub := c.thisTxQ[0]
	c.thisTxQ = c.thisTxQ[1:]
	c.runNow(sub)
}
