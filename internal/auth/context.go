// ABOUTME: Request context helpers for the authenticated token subject
// ABOUTME: Set by BearerMiddleware and read by handlers

package auth

import "context"

type subjectContextKey struct{}

// WithSubject returns a new context carrying the authenticated subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey{}, subject)
}

// SubjectFromContext returns the authenticated subject, or "" if none.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectContextKey{}).(string)
	return sub
}
