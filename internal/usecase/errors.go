package usecase

import (
	"bytes"
	"encoding/json"
)

// ValidationError - ошибка клиента, текст отдается в ответе как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingSDP     = &ValidationError{Message: "Missing sdp"}
	ErrInvalidSDP     = &ValidationError{Message: "Invalid SDP format"}
	ErrInvalidRole    = &ValidationError{Message: "Invalid role"}
	ErrInvalidPayload = &ValidationError{Message: "Invalid payload"}
)

// isAbsent - поле не передано, null или пустая строка
func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 ||
		bytes.Equal(trimmed, []byte("null")) ||
		bytes.Equal(trimmed, []byte(`""`))
}
