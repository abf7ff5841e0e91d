package wire

// Transaction status bytes carried by ReadyForQuery.
const (
	TxStatusIdle     = 'I'
	TxStatusInBlock  = 'T'
	TxStatusInFailed = 'E'
)

// ReadyForQuery tells the client the backend is ready to accept a new
// command; Status reflects the transaction state of the session.
type ReadyForQuery struct {
	Status byte
}

func (*ReadyForQuery) Backend() {}

func (dst *ReadyForQuery) Decode(src []byte) error {
	if len(src) != 1 {
		return &invalidMessageLenErr{messageType: "ReadyForQuery", expectedLen: 1, actualLen: len(src)}
	}
	dst.Status = src[0]
	return nil
}

func (src *ReadyForQuery) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'Z')
	buf = append(buf, src.Status)
	return finishMessage(buf, sp)
}
