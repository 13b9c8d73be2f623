package http

import "context"

// Principal identifies the calling member. Credential verification happens
// outside this system; the middleware only carries the asserted identity.
type Principal struct {
	MemberID string
}

type principalContextKey struct{}

// ContextWithPrincipal attaches the caller identity to the context.
func ContextWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext extracts the caller identity, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
