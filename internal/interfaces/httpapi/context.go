package httpapi

import (
	"context"

	"github.com/itsSambuddha/secons-api/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "principal"

func withPrincipal(ctx context.Context, principal user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(user.Principal)
	return principal, ok
}
