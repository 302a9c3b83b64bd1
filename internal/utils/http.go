package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// WriteJSON encodes data as the response body with the given status code.
// When data cannot be encoded the client gets 500 and the encoding error is
// returned to the caller.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response: %w", err)
	}

	return writeBody(w, contentTypeJSON, body, statusCode)
}

// WriteText writes body as a plain text response. Dataset dumps and the
// version endpoint use it.
func WriteText(w http.ResponseWriter, body string, statusCode int) (int, error) {
	return writeBody(w, contentTypeText, []byte(body), statusCode)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	return w.Write(body)
}
