package helpers

import (
	"context"
	"net/http"

	"github.com/unrolled/render"
)

type contextKey string

const ContextKeyCartKey contextKey = "cartKey"

// CartKeyFromContext returns the session's cart key placed by the cart
// session middleware.
func CartKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(ContextKeyCartKey).(string)
	return key, ok && key != ""
}

func WithCartKey(ctx context.Context, cartKey string) context.Context {
	return context.WithValue(ctx, ContextKeyCartKey, cartKey)
}

// RenderError writes the standard JSON error envelope.
func RenderError(r *render.Render, w http.ResponseWriter, status int, message string) {
	_ = r.JSON(w, status, map[string]string{"error": message})
}
