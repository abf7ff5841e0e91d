package mosespg

import "context"

// Transaction runs fn inside a BEGIN/COMMIT (or ROLLBACK, on error)
// bracket (SPEC_FULL.md §4.6). It allocates a TxHandle, sets this_tx_q
// aside behind a fresh one so only operations tagged with the handle can
// run until the transaction ends, and issues BEGIN. Once BEGIN completes,
// fn runs with the handle; callers pass it to Execute/Prepare/Statement
// calls they want scoped to the transaction. fn's return value decides
// COMMIT (nil) or ROLLBACK (non-nil); Transaction itself returns fn's error
// when fn returned one (even if ROLLBACK also failed), and otherwise the
// COMMIT's error, which is nil on success.
func (c *Conn) Transaction(ctx context.Context, fn func(tx *TxHandle) error) error {
	handle := &TxHandle{}
	beginCh := make(chan *waiterOutcome, 1)

	started := c.sendControl(ctx, func(c *Conn) {
		c.nextTxQ = c.thisTxQ
		c.thisTxQ = nil
		c.curTx = handle
		c.txPhase = txStartPending

		c.submit(&submission{
			kind:     opSimpleQuery,
			tx:       handle,
			dispatch: c.dispatchSimpleQuery("BEGIN"),
			finish: func(c *Conn, o *waiterOutcome) {
				if o.err == nil {
					c.txPhase = txActive
				}
				beginCh <- o
			},
		})
	})
	if !started {
		return ctxOrClosedErr(ctx, c)
	}

	outcome, err := c.waitOutcome(ctx, beginCh)
	if err != nil {
		return err
	}
	if outcome.err != nil {
		return outcome.err
	}

	blockErr := fn(handle)

	endTag := "COMMIT"
	if blockErr != nil {
		endTag = "ROLLBACK"
	}

	endCh := make(chan *waiterOutcome, 1)
	queued := c.sendControl(ctx, func(c *Conn) {
		if blockErr != nil {
			c.txPhase = txRollbackPending
		} else {
			c.txPhase = txCommitPending
		}

		c.submit(&submission{
			kind:     opSimpleQuery,
			tx:       handle,
			dispatch: c.dispatchSimpleQuery(endTag),
			finish: func(c *Conn, o *waiterOutcome) {
				c.thisTxQ = c.nextTxQ
				c.nextTxQ = nil
				c.curTx = nil
				c.txPhase = txNone
				c.drainOne()
				endCh <- o
			},
		})
	})
	if !queued {
		return ctxOrClosedErr(ctx, c)
	}

	outcome, err = c.waitOutcome(ctx, endCh)
	if err != nil {
		return err
	}

	if blockErr != nil {
		return blockErr
	}
	return outcome.err
}
