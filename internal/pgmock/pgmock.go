// Package pgmock provides a minimal mock PostgreSQL backend for driving
// the engine's state machine and queueing logic against scripted server
// behavior, without a real server. A Script is a sequence of Steps run
// against a net.Conn accepted from a net.Pipe or a real listener; each Step
// either expects a particular frontend message or sends a backend one.
package pgmock

import (
	"fmt"
	"io"
	"net"
	"reflect"

	"github.com/jec/moses-pg/wire"
)

// Server is the server side of a mocked connection: it decodes frontend
// messages and encodes backend ones directly over net.Conn, independent of
// the client-side wire.Frontend the engine under test uses.
type Server struct {
	conn    net.Conn
	fb      *wire.FrameBuffer
	buf     [4096]byte
	pending []wire.Frame
}

func NewServer(conn net.Conn) *Server {
	return &Server{conn: conn, fb: wire.NewFrameBuffer()}
}

// ReceiveStartupMessage reads the very first message, which carries no
// type byte, and decodes it as either a StartupMessage or a CancelRequest
// based on length (CancelRequest's body is always 12 bytes after the
// length prefix; StartupMessage's is variable and at least 8).
func (s *Server) ReceiveStartupMessage() (wire.FrontendMessage, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(s.conn, header); err != nil {
		return nil, err
	}
	length := int(header[0])<<24 | int(header[1])<<16 | int(header[2])<<8 | int(header[3])
	body := make([]byte, length-4)
	if _, err := io.ReadFull(s.conn, body); err != nil {
		return nil, err
	}

	if len(body) == 12 {
		cr := &wire.CancelRequest{}
		if err := cr.Decode(body); err == nil {
			return cr, nil
		}
	}

	sm := &wire.StartupMessage{}
	if err := sm.Decode(body); err != nil {
		return nil, err
	}
	return sm, nil
}

// Receive reads and decodes the next frontend message. A single Read can
// hand FrameBuffer.Receive more than one complete frame at once (the
// client sends Parse+Flush, Bind+Flush, etc. as one Write); any frames
// beyond the first are queued in pending rather than dropped, so the next
// call drains them before reading the wire again.
func (s *Server) Receive() (wire.FrontendMessage, error) {
	for {
		if len(s.pending) > 0 {
			fr := s.pending[0]
			s.pending = s.pending[1:]
			return wire.DecodeFrontend(fr)
		}

		n, err := s.conn.Read(s.buf[:])
		if err != nil {
			return nil, err
		}
		s.pending = append(s.pending, s.fb.Receive(s.buf[:n])...)
	}
}

// Send encodes and writes a backend message immediately.
func (s *Server) Send(msg wire.BackendMessage) error {
	_, err := s.conn.Write(msg.Encode(nil))
	return err
}

// Step is one action of a scripted mock-server conversation.
type Step interface {
	Step(*Server) error
}

// Script is an ordered sequence of Steps.
type Script struct {
	Steps []Step
}

func (s *Script) Run(srv *Server) error {
	for _, step := range s.Steps {
		if err := step.Step(srv); err != nil {
			return err
		}
	}
	return nil
}

type expectStartupStep struct {
	any bool
}

func (e *expectStartupStep) Step(srv *Server) error {
	_, err := srv.ReceiveStartupMessage()
	return err
}

// ExpectAnyStartupMessage accepts whatever StartupMessage or CancelRequest
// arrives first, without comparing its contents.
func ExpectAnyStartupMessage() Step {
	return &expectStartupStep{any: true}
}

type expectMessageStep struct {
	want wire.FrontendMessage
	any  bool
}

func (e *expectMessageStep) Step(srv *Server) error {
	msg, err := srv.Receive()
	if err != nil {
		return err
	}

	if e.any {
		if reflect.TypeOf(msg) != reflect.TypeOf(e.want) {
			return fmt.Errorf("pgmock: got %T, want %T", msg, e.want)
		}
		return nil
	}

	if !reflect.DeepEqual(msg, e.want) {
		return fmt.Errorf("pgmock: got %#v, want %#v", msg, e.want)
	}
	return nil
}

// ExpectMessage requires the next frontend message to deep-equal want.
func ExpectMessage(want wire.FrontendMessage) Step {
	return &expectMessageStep{want: want}
}

// ExpectAnyMessage requires only that the next frontend message has the
// same type as want, ignoring its field values.
func ExpectAnyMessage(want wire.FrontendMessage) Step {
	return &expectMessageStep{want: want, any: true}
}

type sendMessageStep struct {
	msg wire.BackendMessage
}

func (e *sendMessageStep) Step(srv *Server) error {
	return srv.Send(e.msg)
}

// SendMessage sends msg to the client.
func SendMessage(msg wire.BackendMessage) Step {
	return &sendMessageStep{msg: msg}
}

type waitForTerminateStep struct{}

func (e *waitForTerminateStep) Step(srv *Server) error {
	for {
		msg, err := srv.Receive()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if _, ok := msg.(*wire.Terminate); ok {
			return nil
		}
	}
}

// WaitForTerminate consumes messages until a Terminate arrives or the
// connection closes.
func WaitForTerminate() Step {
	return &waitForTerminateStep{}
}

// AcceptUnauthenticatedConnRequestSteps is the handshake for a server that
// requires no authentication: startup, AuthenticationOk, BackendKeyData,
// ReadyForQuery(idle).
func AcceptUnauthenticatedConnRequestSteps() []Step {
	return []Step{
		ExpectAnyStartupMessage(),
		SendMessage(&wire.Authentication{Type: wire.AuthTypeOk}),
		SendMessage(&wire.BackendKeyData{ProcessID: 1234, SecretKey: 5678}),
		SendMessage(&wire.ReadyForQuery{Status: wire.TxStatusIdle}),
	}
}
