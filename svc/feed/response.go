package feed

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the JSON envelope of every feed response.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// writeError renders err. HTTPErrors keep their status and key; anything
// else becomes a 500 without leaking the message.
func writeError(w http.ResponseWriter, err error) error {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternal
	}

	detail := &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	return writeJSON(w, httpErr.Code, Response{Error: detail})
}
