// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package access provides authorization for Cinedex.
//
// All parameters use prefixed string format:
//   - subject: "user:01ABC", "system"
//   - action: "read", "create", "update", "delete"
//   - resource: "film:01ABC", "comment:*", or a bare kind ("film") for
//     creation checks where no ID exists yet
//
// Decisions are deny by default. The caller's role travels in the
// request context (see WithRole); ownership of an identified resource
// is resolved through an OwnerResolver at evaluation time.
package access

import (
	"context"
	"strings"
)

// AccessControl checks permissions for all subjects in Cinedex.
type AccessControl interface {
	// Check returns true if subject is allowed to perform action on resource.
	// Returns false for unknown subjects or denied permissions (deny by default).
	Check(ctx context.Context, subject, action, resource string) bool
}

// ParseSubject splits a subject string into prefix and ID.
// Returns ("system", "") for "system".
// Returns ("", subject) if no colon separator found.
func ParseSubject(subject string) (prefix, id string) {
	if subject == "" {
		return "", ""
	}
	if subject == SubjectSystem {
		return SubjectSystem, ""
	}
	parts := strings.SplitN(subject, ":", 2)
	if len(parts) == 1 {
		return "", subject
	}
	return parts[0], parts[1]
}
