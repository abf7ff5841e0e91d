package wire

import "fmt"

// DecodeBackend dispatches a framed message to its typed BackendMessage by
// type byte, decodes it, and returns it. This is the registry described in
// SPEC_FULL.md §4.2: a closed switch keyed by the wire's own type byte,
// rather than a runtime-populated map, since the repertoire is fixed by the
// protocol version this engine speaks.
func DecodeBackend(f Frame) (BackendMessage, error) {
	var msg BackendMessage

	switch f.Type {
	case 'R':
		msg = &Authentication{}
	case 'K':
		msg = &BackendKeyData{}
	case 'S':
		msg = &ParameterStatus{}
	case 'Z':
		msg = &ReadyForQuery{}
	case 'E':
		msg = &ErrorResponse{}
	case 'N':
		msg = &NoticeResponse{}
	case '1':
		msg = &ParseComplete{}
	case '2':
		msg = &BindComplete{}
	case '3':
		msg = &CloseComplete{}
	case 'C':
		msg = &CommandComplete{}
	case 'I':
		msg = &EmptyQueryResponse{}
	case 's':
		msg = &PortalSuspended{}
	case 'n':
		msg = &NoData{}
	case 'T':
		msg = &RowDescription{}
	case 't':
		msg = &ParameterDescription{}
	case 'D':
		msg = &DataRow{}
	case 'G':
		msg = &CopyInResponse{}
	case 'H':
		msg = &CopyOutResponse{}
	case 'W':
		msg = &CopyBothResponse{}
	case 'V':
		msg = &FunctionCallResponse{}
	case 'v':
		msg = &NegotiateProtocolVersion{}
	default:
		return nil, fmt.Errorf("wire: unknown backend message type: %c", f.Type)
	}

	if err := msg.Decode(f.Payload); err != nil {
		return nil, err
	}
	return msg, nil
}

// DecodeFrontend is the mirror registry for messages sent by the client. It
// exists for the mock-server test harness (the mock backend in
// internal/pgmock) — production code only
// ever encodes frontend messages, never decodes them.
func DecodeFrontend(f Frame) (FrontendMessage, error) {
	var msg FrontendMessage

	switch f.Type {
	case 'B':
		msg = &Bind{}
	case 'C':
		msg = &Close{}
	case 'D':
		msg = &Describe{}
	case 'E':
		msg = &Execute{}
	case 'H':
		msg = &Flush{}
	case 'P':
		msg = &Parse{}
	case 'p':
		msg = &PasswordMessage{}
	case 'Q':
		msg = &Query{}
	case 'S':
		msg = &Sync{}
	case 'X':
		msg = &Terminate{}
	default:
		return nil, fmt.Errorf("wire: unknown frontend message type: %c", f.Type)
	}

	if err := msg.Decode(f.Payload); err != nil {
		return nil, err
	}
	return msg, nil
}
