package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorConflict       = errors.New("state conflict")
	ErrorUserNameExists = errors.New("username already exists")
	ErrorEmailExists    = errors.New("email already exists")

	// Token errors.
	ErrorInvalidToken = errors.New("invalid token")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)

// Failure kinds surfaced to callers. Each kind has a stable code assigned by
// the transport layer; match them with errors.Is.
var (
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email taken")

	ErrUserNotFound = errors.New("user not found")
	ErrBadPassword  = errors.New("bad password")

	ErrInvalidCredentialsHeader = errors.New("invalid credentials header")

	ErrNotSignedIn     = errors.New("not signed in")
	ErrNoActiveSession = errors.New("no active session")
	ErrForbidden       = errors.New("forbidden")

	ErrResourceNotFound = errors.New("resource not found")
)

// A signed-out session is one way of not being signed in, so
// ErrAlreadySignedOut also matches ErrNotSignedIn.
var ErrAlreadySignedOut error = &kindAlias{msg: "already signed out", parent: ErrNotSignedIn}

// Resource specific not-found kinds; each also matches ErrResourceNotFound.
var (
	ErrUserProfileNotFound error = &kindAlias{msg: "user profile not found", parent: ErrResourceNotFound}
	ErrQuestionNotFound    error = &kindAlias{msg: "question not found", parent: ErrResourceNotFound}
	ErrAnswerNotFound      error = &kindAlias{msg: "answer not found", parent: ErrResourceNotFound}
)

// kindAlias is a distinct sentinel that also matches its parent kind.
type kindAlias struct {
	msg    string
	parent error
}

func (k *kindAlias) Error() string { return k.msg }
func (k *kindAlias) Unwrap() error { return k.parent }

// Error is a failure of a given kind with an operation specific message,
// e.g. Kind=ErrNotSignedIn, Message="User has not signed in".
type Error struct {
	Kind    error
	Message string
}

// Fail builds an *Error of the given kind.
func Fail(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }
