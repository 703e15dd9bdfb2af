package scope

import (
	"context"

	"careersight-srv/internal/model"
)

type contextKey struct{}

var scopeKey contextKey

// SetScopeToContext attaches the caller scope to the context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, sc)
}

// GetScopeFromContext returns the scope stored in the context, or a zero
// scope when none was set.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, ok := ctx.Value(scopeKey).(model.Scope)
	if !ok {
		return model.Scope{}
	}
	return sc
}

// SystemScope is the scope used by background workers.
func SystemScope() model.Scope {
	return model.Scope{UserID: "system", Role: "system"}
}
