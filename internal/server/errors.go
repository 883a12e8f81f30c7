package server

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

const (
	MsgUserNotFound        = "User not found"
	MsgNameEmailRequired   = "Name and email are required"
	MsgNameEmailEmpty      = "Name and email cannot be empty"
	MsgAgeOutOfRange       = "Age must be between 0 and 120"
	MsgEmailExists         = "Email already exists"
	MsgPostFieldsRequired  = "Title, content, and userId are required"
	MsgSearchQueryRequired = `Query parameter "q" is required`
	MsgInternal            = "Something went wrong!"
)

// Error is a classified failure whose Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return errors.WithStack(&Error{Kind: KindValidation, Message: message})
}

func NewNotFoundError(message string) error {
	return errors.WithStack(&Error{Kind: KindNotFound, Message: message})
}

func NewConflictError(message string) error {
	return errors.WithStack(&Error{Kind: KindConflict, Message: message})
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
// if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the message a caller may see for err. Internal errors
// never leak their details.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return MsgInternal
}
