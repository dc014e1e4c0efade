package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/shelfwise/shelfwise/internal/pkg/ctxlog"
)

// ErrorMapping pairs a sentinel error with the status it should produce.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses err.Error()
}

// HandleError resolves err against mappings with errors.Is. An unmapped
// error is logged and answered with a generic 500 so internals never leak.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = err.Error()
			}
			Error(w, m.Status, msg)
			return
		}
	}
	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
