package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the propagation policy: validation and
// not-found problems are absorbed into a conversational reply, collaborator
// failures degrade to a clarification, and only store failures surface to
// the caller as a hard 5xx.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindCollaborator
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindCollaborator:
		return "collaborator"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error carries a kind plus a user-presentable message. The wrapped cause
// (if any) is for logs only and must never reach a chat response.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Collaborator(message string, cause error) *Error {
	return &Error{Kind: KindCollaborator, Message: message, Err: cause}
}

func Store(message string, cause error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: cause}
}

// KindOf reports the kind of err, or ok=false when err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsCollaborator(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindCollaborator
}

func IsStore(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindStore
}

// UserMessage returns the presentable message for err, falling back to a
// generic line for unclassified errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}
