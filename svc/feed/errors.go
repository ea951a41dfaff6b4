package feed

import "net/http"

// HTTPError is an error with a status code and a machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrUnauthorized = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrInvalidLimit = HTTPError{Code: http.StatusBadRequest, Key: "invalid_limit"}
	ErrInvalidType  = HTTPError{Code: http.StatusBadRequest, Key: "invalid_type"}
	ErrInternal     = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error"}
)
