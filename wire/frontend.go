package wire

import "io"

// Frontend is the client's view of the wire: it buffers outbound messages
// until TakeOutbound is called, and turns inbound byte chunks into decoded
// BackendMessages via an internal FrameBuffer. It knows nothing about
// connections, sockets or state machines — it is pure byte-framing plus
// codec, matching SPEC_FULL.md's "Framing Buffer" and "Message Codec"
// components composed together for convenient use by the engine.
type Frontend struct {
	fb   *FrameBuffer
	wbuf []byte

	tracer *Tracer
}

// NewFrontend returns a Frontend with an empty inbound buffer.
func NewFrontend() *Frontend {
	return &Frontend{fb: NewFrameBuffer()}
}

// Trace starts tracing every message sent or received through this
// Frontend to w, in a libpq PQtrace-like format. It is independent of any
// tracelog.Logger the connection may also be using (see SPEC_FULL.md
// §4.9.2).
func (f *Frontend) Trace(w io.Writer, suppressTimestamps bool) {
	f.tracer = &Tracer{Writer: w, SuppressTimestamps: suppressTimestamps}
}

// Untrace stops tracing.
func (f *Frontend) Untrace() {
	f.tracer = nil
}

// Send appends the encoded message to the outbound buffer. It is not
// guaranteed to be written anywhere until the caller takes ownership of the
// buffer via TakeOutbound.
func (f *Frontend) Send(msg FrontendMessage) {
	prev := len(f.wbuf)
	f.wbuf = msg.Encode(f.wbuf)
	if f.tracer != nil {
		f.tracer.TraceMessage('F', int32(len(f.wbuf)-prev), msg)
	}
}

// TakeOutbound returns everything queued by Send since the last call and
// resets the outbound buffer to empty.
func (f *Frontend) TakeOutbound() []byte {
	out := f.wbuf
	f.wbuf = nil
	return out
}

// Feed hands chunk (freshly read from the transport) to the internal
// FrameBuffer and decodes every complete frame it yields, in order. It
// returns as many messages as could be decoded before the first decode
// error, plus that error if one occurred — a protocol violation per
// SPEC_FULL.md §7 kind 6.
func (f *Frontend) Feed(chunk []byte) ([]BackendMessage, error) {
	frames := f.fb.Receive(chunk)
	msgs := make([]BackendMessage, 0, len(frames))

	for _, fr := range frames {
		msg, err := DecodeBackend(fr)
		if err != nil {
			return msgs, err
		}
		if f.tracer != nil {
			f.tracer.TraceMessage('B', int32(5+len(fr.Payload)), msg)
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}
