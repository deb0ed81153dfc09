// Package auth supplies the authenticated principal for a request.
// It authenticates bearer tokens; authorization decisions live with the
// resources being accessed.
package auth

import "context"

// Principal is the authenticated actor making a request.
type Principal struct {
	ID      int64
	IsAdmin bool
}

// CanAccess reports whether p may read or mutate a record owned by ownerID.
func (p Principal) CanAccess(ownerID int64) bool {
	return p.IsAdmin || p.ID == ownerID
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the principal stored by NewContext.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
