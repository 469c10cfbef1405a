package dashboard

import "context"

// ActivityContext identifies who performed a dashboard mutation.
// ActorID is the authenticated principal, UserID the account whose
// preferences are being edited (they differ when a supervisor adjusts
// another operator's dashboard), and TenantID the mine site.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity attaches actor identity to the request context so
// the service can stamp audit events without threading identifiers
// through every call.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// activityContextFrom returns the attached identity, or a zero value for
// anonymous sessions.
func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}
