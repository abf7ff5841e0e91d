package wire

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// Tracer roughly mimics the format produced by libpq's PQtrace: one line per
// message crossing the wire, tab-separated: a timestamp (unless
// SuppressTimestamps is set), then the sender ('F' or 'B'), then the message.
type Tracer struct {
	Writer             io.Writer
	SuppressTimestamps bool
}

func (t *Tracer) TraceMessage(sender byte, encodedLen int32, msg Message) {
	buf := &bytes.Buffer{}

	if !t.SuppressTimestamps {
		buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000000"))
		buf.WriteByte('\t')
	}

	buf.WriteByte(sender)
	buf.WriteByte('\t')

	switch msg := msg.(type) {
	case *Authentication:
		fmt.Fprintf(buf, "Authentication\t %d", msg.Type)
	case *BackendKeyData:
		fmt.Fprintf(buf, "BackendKeyData\t %d %d", msg.ProcessID, msg.SecretKey)
	case *Bind:
		fmt.Fprintf(buf, "Bind\t %q %q %d params", msg.DestinationPortal, msg.PreparedStatement, len(msg.Parameters))
	case *BindComplete:
		buf.WriteString("BindComplete")
	case *CancelRequest:
		buf.WriteString("CancelRequest")
	case *Close:
		fmt.Fprintf(buf, "Close\t %c %q", msg.ObjectType, msg.Name)
	case *CloseComplete:
		buf.WriteString("CloseComplete")
	case *CommandComplete:
		fmt.Fprintf(buf, "CommandComplete\t %q", msg.CommandTag)
	case *DataRow:
		fmt.Fprintf(buf, "DataRow\t %d columns", len(msg.Values))
	case *Describe:
		fmt.Fprintf(buf, "Describe\t %c %q", msg.ObjectType, msg.Name)
	case *EmptyQueryResponse:
		buf.WriteString("EmptyQueryResponse")
	case *ErrorResponse:
		fmt.Fprintf(buf, "ErrorResponse\t %s", msg.Fields[FieldMessage])
	case *Execute:
		fmt.Fprintf(buf, "Execute\t %q %d", msg.Portal, msg.MaxRows)
	case *Flush:
		buf.WriteString("Flush")
	case *NoData:
		buf.WriteString("NoData")
	case *NoticeResponse:
		fmt.Fprintf(buf, "NoticeResponse\t %s", msg.Fields[FieldMessage])
	case *Parse:
		fmt.Fprintf(buf, "Parse\t %q %q", msg.Name, msg.Query)
	case *ParseComplete:
		buf.WriteString("ParseComplete")
	case *ParameterDescription:
		fmt.Fprintf(buf, "ParameterDescription\t %d params", len(msg.ParameterOIDs))
	case *ParameterStatus:
		fmt.Fprintf(buf, "ParameterStatus\t %q = %q", msg.Name, msg.Value)
	case *PasswordMessage:
		buf.WriteString("PasswordMessage\t ****")
	case *PortalSuspended:
		buf.WriteString("PortalSuspended")
	case *Query:
		fmt.Fprintf(buf, "Query\t %q", msg.SQL)
	case *ReadyForQuery:
		fmt.Fprintf(buf, "ReadyForQuery\t %c", msg.Status)
	case *RowDescription:
		fmt.Fprintf(buf, "RowDescription\t %d columns", len(msg.Columns))
	case *StartupMessage:
		buf.WriteString("StartupMessage")
	case *Sync:
		buf.WriteString("Sync")
	case *Terminate:
		buf.WriteString("Terminate")
	default:
		fmt.Fprintf(buf, "%T", msg)
	}

	buf.WriteByte('\n')
	t.Writer.Write(buf.Bytes())
}
