package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// envelope is the JSON error body returned by every handler. No stack traces
// or internal identifiers are exposed to callers.
type envelope struct {
	Error string `json:"error"`
	Code  Code   `json:"code"`
}

// RespondError writes the JSON error envelope for err. Structured errors map
// to their own status and code; anything else is logged and surfaced as a
// generic internal error.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		slog.Error("unstructured handler error", "err", err)
		e = New(CodeInternal, "internal error")
	}

	render.Status(r, e.HTTPStatusCode())
	render.JSON(w, r, envelope{Error: e.Message, Code: e.Code})
}
