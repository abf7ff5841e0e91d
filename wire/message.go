// Package wire implements the PostgreSQL frontend/backend wire protocol,
// version 3.0: byte-exact framing, message encoding and decoding. It has no
// knowledge of connections, queues or state machines — those live in the
// parent package.
package wire

import "fmt"

// Message is implemented by every protocol message, in either direction.
//
// Decode is allowed and expected to retain a reference to data after
// returning (unlike encoding.BinaryUnmarshaler) — callers that need to keep
// a decoded message around after the next Receive must copy it themselves.
type Message interface {
	Decode(data []byte) error
	Encode(dst []byte) []byte
}

// FrontendMessage is a message sent by the client.
type FrontendMessage interface {
	Message
	Frontend()
}

// BackendMessage is a message sent by the server.
type BackendMessage interface {
	Message
	Backend()
}

// AuthenticationResponseMessage marks the family of messages sent in
// response to a StartupMessage while authentication is in progress.
type AuthenticationResponseMessage interface {
	BackendMessage
	AuthenticationResponse()
}

type invalidMessageLenErr struct {
	messageType string
	expectedLen int
	actualLen   int
}

func (e *invalidMessageLenErr) Error() string {
	return fmt.Sprintf("%s body must have length of %d, but it is %d", e.messageType, e.expectedLen, e.actualLen)
}

type invalidMessageFormatErr struct {
	messageType string
	details     string
}

func (e *invalidMessageFormatErr) Error() string {
	if e.details == "" {
		return fmt.Sprintf("%s body is invalid", e.messageType)
	}
	return fmt.Sprintf("%s body is invalid: %s", e.messageType, e.details)
}

// beginMessage appends a type byte and a placeholder length field to dst,
// returning the new buffer and the offset of the length field so a later
// finishMessage call can patch it in once the payload is known.
func beginMessage(dst []byte, typeByte byte) (buf []byte, lengthFieldOffset int) {
	buf = append(dst, typeByte)
	lengthFieldOffset = len(buf)
	buf = append(buf, 0, 0, 0, 0)
	return buf, lengthFieldOffset
}

// beginUntypedMessage is like beginMessage but for StartupMessage and
// CancelRequest, which carry a length field but no type byte.
func beginUntypedMessage(dst []byte) (buf []byte, lengthFieldOffset int) {
	lengthFieldOffset = len(dst)
	buf = append(dst, 0, 0, 0, 0)
	return buf, lengthFieldOffset
}

// finishMessage patches the 4-byte big-endian length field at
// lengthFieldOffset with the number of bytes written since (inclusive of
// the length field itself) and returns the completed buffer.
func finishMessage(buf []byte, lengthFieldOffset int) []byte {
	n := uint32(len(buf) - lengthFieldOffset)
	buf[lengthFieldOffset] = byte(n >> 24)
	buf[lengthFieldOffset+1] = byte(n >> 16)
	buf[lengthFieldOffset+2] = byte(n >> 8)
	buf[lengthFieldOffset+3] = byte(n)
	return buf
}
