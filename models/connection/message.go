package connection

type NoPayload bool

// Payload is only set through AddPayload, so error responses carry no
// payload on the wire.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload *T       `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = &payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// Same code, error only. Used when a request fails before any payload
// could be built.
func NewErrorMessage[T any](code uint8, err error, message string) Message[T] {
	msg := NewMessage[T](code)
	msg.AddError(err.Error(), message)
	return msg
}
