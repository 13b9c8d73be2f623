package application

import "errors"

// Sentinel kinds. Every domain failure wraps exactly one of these, so callers
// can branch with errors.Is while still receiving a rule-specific code.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrForbidden is returned when the caller is known but lacks the role or
	// permission for the action.
	ErrForbidden = errors.New("application: forbidden")
	// ErrConflict is returned when an action would violate a cardinality or
	// uniqueness invariant.
	ErrConflict = errors.New("application: conflict")
)

// Stable machine-readable codes distinguishing the specific rule violated.
// Client UIs key off these to render precise guidance.
const (
	CodeScheduleNotFound = "SCHEDULE_NOT_FOUND"
	CodeMemberNotFound   = "MEMBER_NOT_FOUND"
	CodePlaceNotFound    = "PLACE_NOT_FOUND"
	CodeAttendeeNotFound = "ATTENDEE_NOT_FOUND"

	CodeNotAuthor           = "NOT_AUTHOR"
	CodeNotParticipant      = "NOT_PARTICIPANT"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeEditRequired        = "EDIT_PERMISSION_REQUIRED"
	CodeChatRequired        = "CHAT_PERMISSION_REQUIRED"
	CodeDeleteRequired      = "DELETE_PERMISSION_REQUIRED"
	CodeAuthorPermissionSet = "AUTHOR_PERMISSION_LOCKED"
	CodeAuthorLocked        = "AUTHOR_LOCKED"

	CodeAttendeeLimit    = "ATTENDEE_LIMIT_REACHED"
	CodeAlreadyAttendee  = "ALREADY_ATTENDEE"
	CodeDuplicateProfile = "PROFILE_ALREADY_REGISTERED"
)

// DomainError carries a sentinel kind plus the stable code for the rule that
// was violated. errors.Is(err, ErrForbidden) etc. match through Unwrap.
type DomainError struct {
	kind    error
	Code    string
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Unwrap exposes the sentinel kind for errors.Is.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.kind
}

func notFound(code, message string) error {
	return &DomainError{kind: ErrNotFound, Code: code, Message: message}
}

func forbidden(code, message string) error {
	return &DomainError{kind: ErrForbidden, Code: code, Message: message}
}

func conflict(code, message string) error {
	return &DomainError{kind: ErrConflict, Code: code, Message: message}
}

// ErrorCode extracts the stable code from a domain error, or "" when the
// error carries none.
func ErrorCode(err error) string {
	var dErr *DomainError
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ""
}

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
