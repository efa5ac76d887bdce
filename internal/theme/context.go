package theme

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithPalette returns a context carrying p.
func WithPalette(ctx context.Context, p Palette) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the palette carried by ctx, or DefaultPalette.
func FromContext(ctx context.Context) Palette {
	if ctx != nil {
		if p, ok := ctx.Value(ctxKey{}).(Palette); ok {
			return p
		}
	}
	return DefaultPalette
}

// Middleware attaches the store's current snapshot to every request so views
// can read the palette without it being passed through them.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithPalette(r.Context(), store.Snapshot())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
