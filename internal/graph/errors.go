package graph

// Stable machine-readable error codes returned to callers. Internal
// failure detail never crosses this boundary.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadCredentials  = "BAD_CREDENTIALS"
	CodeInvalidInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is a caller-facing operation error. Its extensions payload is
// closed: a code and, when known, the offending argument name.
type Error struct {
	Code    string
	Message string
	Field   string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements the resolver error contract of
// graph-gophers/graphql-go, surfacing the code in the response.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if e.Field != "" {
		ext["invalidArg"] = e.Field
	}
	return ext
}

func errUnauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "not authenticated"}
}

// errBadCredentials deliberately does not distinguish an unknown user
// from a wrong password.
func errBadCredentials() *Error {
	return &Error{Code: CodeBadCredentials, Message: "wrong credentials"}
}

func errInvalidInput(message, field string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message, Field: field}
}

func errInternal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}
