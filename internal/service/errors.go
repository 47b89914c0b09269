package service

import "errors"

// ErrorKind classifies errors raised at the service boundary.
type ErrorKind int

const (
	// KindInvalidInput is caller-correctable; the message is shown verbatim.
	KindInvalidInput ErrorKind = iota + 1
	// KindUnauthenticated covers bad credentials and invalid or expired tokens.
	KindUnauthenticated
	// KindCorruptCredential means a stored password hash is unreadable.
	KindCorruptCredential
	// KindNotFound means an authenticated identity has no backing user.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindCorruptCredential:
		return "CorruptCredential"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error is a classified service error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target with an empty
// message matches every error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// InvalidInput returns a caller-correctable error with the given message.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// KindOf returns the kind of err, or 0 if err is not a service error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// wrap attaches a cause to a sentinel without changing its message.
func wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Message: sentinel.Message, Err: cause}
}

// Kind-wide sentinels for errors.Is checks.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrCorruptCredential = &Error{Kind: KindCorruptCredential, Message: "internal server error"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "user not found"}
)

var (
	// ErrNameRequired is returned when the signup name is blank.
	ErrNameRequired = InvalidInput("Name is required")

	// ErrEmailRequired is returned when the signup email is blank.
	ErrEmailRequired = InvalidInput("Email is required")

	// ErrPasswordTooShort is returned when the password has fewer than 6 characters.
	ErrPasswordTooShort = InvalidInput("Password must be at least 6 characters")

	// ErrPasswordTooLong is returned when the password cannot be hashed by bcrypt.
	ErrPasswordTooLong = InvalidInput("Password must be at most 72 bytes")

	// ErrEmailInUse is returned when the normalized email is already registered.
	ErrEmailInUse = InvalidInput("Email already in use")

	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid email or password"}

	// ErrInvalidToken is returned for bearer tokens that fail verification.
	ErrInvalidToken = &Error{Kind: KindUnauthenticated, Message: "Invalid or expired token"}
)
