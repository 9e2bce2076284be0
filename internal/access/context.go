// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access

import "context"

type systemSubjectKey struct{}

type roleKey struct{}

// WithSystemSubject returns a context marked as a system-level operation,
// which bypasses normal access control checks.
func WithSystemSubject(ctx context.Context) context.Context {
	return context.WithValue(ctx, systemSubjectKey{}, true)
}

// IsSystemContext reports whether the context was marked as a system operation
// via WithSystemSubject.
func IsSystemContext(ctx context.Context) bool {
	v, ok := ctx.Value(systemSubjectKey{}).(bool)
	return ok && v
}

// WithRole returns a context carrying the authenticated subject's role.
// The HTTP auth middleware sets this from the verified bearer token.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the role set by WithRole, or empty string if none.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
