// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// StaticAccessControl implements AccessControl with static role definitions.
//
// Thread-safety: roles is immutable after construction and requires no
// synchronization; the subject's role arrives per request in context.
type StaticAccessControl struct {
	roles    map[string][]compiledPermission // roleName → compiled permission patterns (immutable)
	resolver OwnerResolver
}

// compiledPermission holds a permission pattern and its compiled glob.
type compiledPermission struct {
	pattern string
	glob    glob.Glob
}

// NewStaticAccessControl creates a new static access controller with default roles.
// If resolver is nil, NullResolver is used and $own patterns never match.
//
// Panics if default roles contain invalid permission patterns (configuration bug).
func NewStaticAccessControl(resolver OwnerResolver) *StaticAccessControl {
	ac, err := NewStaticAccessControlWithRoles(DefaultRoles(), resolver)
	if err != nil {
		// DefaultRoles() patterns are hardcoded and should always be valid.
		// If they fail to compile, it's a code bug that should fail fast.
		panic("invalid permission pattern in DefaultRoles: " + err.Error())
	}
	return ac
}

// NewStaticAccessControlWithRoles creates a new static access controller with custom roles.
// If resolver is nil, NullResolver is used.
//
// Returns error if any permission pattern fails to compile (invalid glob syntax).
func NewStaticAccessControlWithRoles(roles map[string][]string, resolver OwnerResolver) (*StaticAccessControl, error) {
	if resolver == nil {
		resolver = NullResolver{}
	}

	// Compile roles
	compiledRoles := make(map[string][]compiledPermission, len(roles))
	for role, perms := range roles {
		compiled := make([]compiledPermission, 0, len(perms))
		for _, p := range perms {
			// Use ':' as separator for permission patterns
			g, err := glob.Compile(p, ':')
			if err != nil {
				return nil, oops.In("access").
					Code("INVALID_PERMISSION_PATTERN").
					With("role", role).
					With("pattern", p).
					Wrap(err)
			}
			compiled = append(compiled, compiledPermission{pattern: p, glob: g})
		}
		compiledRoles[role] = compiled
	}

	return &StaticAccessControl{
		roles:    compiledRoles,
		resolver: resolver,
	}, nil
}

// Check implements AccessControl.
func (s *StaticAccessControl) Check(ctx context.Context, subject, action, resource string) bool {
	// System always allowed
	if subject == SubjectSystem || IsSystemContext(ctx) {
		return true
	}

	// Empty subject denied
	if subject == "" {
		return false
	}

	prefix, id := ParseSubject(subject)
	if prefix != "user" || id == "" {
		return false
	}

	return s.checkRole(ctx, id, action, resource)
}

// checkRole checks if the context role allows the action on resource.
func (s *StaticAccessControl) checkRole(ctx context.Context, userID, action, resource string) bool {
	role := RoleFromContext(ctx)
	if role == "" {
		return false // Unauthenticated or unknown subject
	}

	permissions := s.roles[role]
	if permissions == nil {
		return false
	}

	requested := action + ":" + resource

	// Match against role permissions
	for _, perm := range permissions {
		// Resolve tokens in the permission pattern
		resolvedPattern, ok := s.resolveTokens(ctx, perm.pattern, userID, resource)
		if !ok {
			continue
		}

		// If pattern changed, recompile and match
		if resolvedPattern != perm.pattern {
			g, err := glob.Compile(resolvedPattern, ':')
			if err != nil {
				// Log at warn level - pattern compilation failure causes silent permission denial
				slog.Warn("failed to compile resolved permission pattern",
					"user_id", userID,
					"action", action,
					"pattern", perm.pattern,
					"resolved", resolvedPattern,
					"error", err)
				continue
			}
			if g.Match(requested) {
				return true
			}
		} else if perm.glob.Match(requested) {
			return true
		}
	}

	return false
}

// resolveTokens replaces $self and $own with actual values. The second
// return is false when a token cannot resolve, meaning the pattern can
// never match this request.
func (s *StaticAccessControl) resolveTokens(ctx context.Context, pattern, userID, resource string) (string, bool) {
	if strings.Contains(pattern, "$self") {
		pattern = strings.ReplaceAll(pattern, "$self", userID)
	}
	if strings.Contains(pattern, "$own") {
		ownedID := s.resolveOwned(ctx, userID, resource)
		if ownedID == "" {
			return "", false
		}
		pattern = strings.ReplaceAll(pattern, "$own", ownedID)
	}
	return pattern, true
}

// resolveOwned returns the requested resource's ID when the user owns it,
// empty string otherwise. Lookup errors resolve to empty, so a failed
// lookup denies rather than allows.
func (s *StaticAccessControl) resolveOwned(ctx context.Context, userID, resource string) string {
	kind, id := splitResource(resource)
	if kind == "" || id == "" || strings.Contains(id, ":") {
		return ""
	}
	if s.resolver == nil {
		return ""
	}
	owner, err := s.resolver.Owner(ctx, kind, id)
	if err != nil {
		// Log at warn level - infrastructure issue affecting permission checks
		slog.Warn("failed to resolve owner for access check",
			"user_id", userID,
			"resource", resource,
			"error", err)
		return ""
	}
	if owner != userID {
		return ""
	}
	return id
}

// splitResource splits "kind:id" into its parts. A bare kind yields
// ("kind", "").
func splitResource(resource string) (kind, id string) {
	parts := strings.SplitN(resource, ":", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
