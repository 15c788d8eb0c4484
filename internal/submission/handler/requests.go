package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"intake/internal/submission/service"
	dErrors "intake/pkg/domain-errors"
)

// MaxBodyBytes caps the submit body.
const MaxBodyBytes = 100 << 10

const messageTooLarge = "Request body too large."

// decodeSubmitBody turns the request body into untyped JSON for the
// validator. A missing body or a non-JSON content type yields a nil input,
// which the validator rejects like any other malformed shape. Numbers are
// kept as json.Number so a numeric string and a number stay distinguishable.
func decodeSubmitBody(w http.ResponseWriter, r *http.Request) (any, error) {
	if !isJSON(r.Header.Get("Content-Type")) {
		return nil, nil
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()

	var input any
	if err := dec.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, classifyDecodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, classifyDecodeError(err)
		}
		return nil, dErrors.New(dErrors.CodeValidation, service.MessageInvalidFormData)
	}
	return input, nil
}

func classifyDecodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.Wrap(err, dErrors.CodeTooLarge, messageTooLarge)
	}
	return dErrors.Wrap(err, dErrors.CodeValidation, service.MessageInvalidFormData)
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
