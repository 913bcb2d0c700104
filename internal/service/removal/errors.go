package removal

import (
	"BackgroundRemover/internal/service/image"
	"errors"
	"fmt"
)

// Kind вид ошибки, которую видит пользователь.
type Kind int

const (
	KindInvalidFileType Kind = iota + 1
	KindTransport
	KindNoImageReturned
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFileType:
		return "InvalidFileType"
	case KindTransport:
		return "TransportError"
	case KindNoImageReturned:
		return "NoImageReturned"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrNoImageReturned модель ответила, но без картинки.
var ErrNoImageReturned = errors.New("the model did not return an image")

// ErrorRecord ошибка для показа пользователю.
type ErrorRecord struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error ошибка конвейера с видом. Исходная ошибка доступна через errors.Unwrap.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Transport оборачивает сбой вызова модели.
func Transport(err error) error {
	return &Error{Kind: KindTransport, Err: err}
}

// AsRecord приводит любую ошибку к ErrorRecord. Всё, что не распознано, считается сбоем транспорта.
func AsRecord(err error) ErrorRecord {
	var e *Error
	switch {
	case errors.As(err, &e):
		return ErrorRecord{Kind: e.Kind, Message: e.Error()}
	case errors.Is(err, image.ErrInvalidFileType):
		return ErrorRecord{Kind: KindInvalidFileType, Message: err.Error()}
	default:
		return ErrorRecord{Kind: KindTransport, Message: err.Error()}
	}
}
