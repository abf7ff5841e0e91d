package mosespg

import "github.com/jec/moses-pg/wire"

// Each dispatchXxx builder returns the closure a submission carries as its
// dispatch field: it sends the wire message(s) for one extended-query step
// (always followed by Flush, per SPEC_FULL.md §4.5, except Simple Query,
// which stands alone) and sets the session state that step puts it in.
// Sync is never part of these — it is only ever sent by sendSyncAndResync
// during extended-query error recovery.

func (c *Conn) dispatchSimpleQuery(sql string) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Query{SQL: sql})
		c.writeOutbound()
		c.state = stateQueryInProgress
	}
}

func (c *Conn) dispatchParse(name, sql string, paramOIDs []uint32) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Parse{Name: name, Query: sql, ParameterOIDs: paramOIDs})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateParseInProgress
	}
}

func (c *Conn) dispatchDescribeStatement(name string) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Describe{ObjectType: wire.DescribeStatement, Name: name})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateStatementDescribeInProgress
	}
}

func (c *Conn) dispatchDescribePortal(name string) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Describe{ObjectType: wire.DescribePortal, Name: name})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = statePortalDescribeInProgress
	}
}

func (c *Conn) dispatchBind(portal, stmt string, paramFormats []int16, params [][]byte, resultFormats []int16) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Bind{
			DestinationPortal:    portal,
			PreparedStatement:    stmt,
			ParameterFormatCodes: paramFormats,
			Parameters:           params,
			ResultFormatCodes:    resultFormats,
		})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateBindInProgress
	}
}

func (c *Conn) dispatchExecute(portal string, maxRows uint32) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Execute{Portal: portal, MaxRows: maxRows})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateExecuteInProgress
	}
}

func (c *Conn) dispatchClosePortal(name string) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Close{ObjectType: wire.DescribePortal, Name: name})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateClosePortalInProgress
	}
}

func (c *Conn) dispatchCloseStatement(name string) func(*Conn) {
	return func(c *Conn) {
		c.fe.Send(&wire.Close{ObjectType: wire.DescribeStatement, Name: name})
		c.fe.Send(&wire.Flush{})
		c.writeOutbound()
		c.state = stateCloseStatementInProgress
	}
}
