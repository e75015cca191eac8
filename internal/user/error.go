package user

import (
	"fmt"

	"github.com/google/uuid"
)

type Kind int

const (
	KindDuplicateEmail Kind = iota + 1
	KindNotFound
	KindHasPendingPayments
	KindAmbiguous
	KindStorage
	KindCollaborator
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindNotFound:
		return "not_found"
	case KindHasPendingPayments:
		return "has_pending_payments"
	case KindAmbiguous:
		return "ambiguous_result"
	case KindStorage:
		return "storage_failure"
	case KindCollaborator:
		return "collaborator_failure"
	default:
		return "unknown"
	}
}

// Error is a failure of a user operation. Email and ID identify the user
// involved when known; Err is the underlying cause, if any.
type Error struct {
	Kind  Kind
	Email string
	ID    uuid.UUID
	Err   error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindDuplicateEmail:
		msg = fmt.Sprintf("user with email %s already exists", e.Email)
	case KindNotFound:
		msg = fmt.Sprintf("user %s not found", e.ID)
	case KindHasPendingPayments:
		msg = fmt.Sprintf("user with email %s has pending payments", e.Email)
	default:
		msg = e.Kind.String()
	}

	if e.Err != nil {
		return "user: " + msg + ": " + e.Err.Error()
	}
	return "user: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below can be used
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrHasPendingPayments = &Error{Kind: KindHasPendingPayments}
	ErrAmbiguous          = &Error{Kind: KindAmbiguous}
	ErrStorage            = &Error{Kind: KindStorage}
	ErrCollaborator       = &Error{Kind: KindCollaborator}
)

func storageErr(err error) error {
	return &Error{Kind: KindStorage, Err: err}
}
