package handler

import (
	"net/http"

	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
)

// SubmitResponse is the envelope for POST /api/submit and for failures on
// either submission route.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func writeFailure(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	httputil.WriteJSON(w, dErrors.HTTPStatus(code), SubmitResponse{
		Success: false,
		Error:   dErrors.MessageOf(err),
	})
}
