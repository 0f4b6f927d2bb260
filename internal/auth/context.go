package auth

import "context"

type ctxKey string

const (
	ctxUserID    ctxKey = "userID"
	ctxAccountID ctxKey = "accountID"
	ctxRole      ctxKey = "role"
)

// WithUser attaches the authenticated user's identity to the context.
// accountID is the data scope: handlers read and write rows keyed by it, so
// a team member operates on the owner's data without impersonating them.
func WithUser(ctx context.Context, userID, accountID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxAccountID, accountID)
	return context.WithValue(ctx, ctxRole, role)
}

// UserIDFromContext returns the authenticated user's ID, or "" if the request
// was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}

// AccountIDFromContext returns the account whose data the request operates
// on, or "" if the request was not authenticated.
func AccountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxAccountID).(string)
	return id
}

// RoleFromContext returns the authenticated user's role, or "" if unset.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ctxRole).(string)
	return role
}
