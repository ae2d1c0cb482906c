package dashboard

import "context"

// AuditContext captures actor identifiers for layout change events.
type AuditContext struct {
	ActorID    string
	UserID     string
	Department string
}

type auditContextKey struct{}

// ContextWithAudit stores audit metadata on the provided context.
func ContextWithAudit(ctx context.Context, meta AuditContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, auditContextKey{}, meta)
}

// AuditFrom extracts the audit metadata from the context, if present.
func AuditFrom(ctx context.Context) AuditContext {
	if ctx == nil {
		return AuditContext{}
	}
	if meta, ok := ctx.Value(auditContextKey{}).(AuditContext); ok {
		return meta
	}
	return AuditContext{}
}
