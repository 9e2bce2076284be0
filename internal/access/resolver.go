// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access

import "context"

// OwnerResolver provides dynamic ownership information for access control.
// Used to resolve the $own token at evaluation time.
type OwnerResolver interface {
	// Owner returns the owning user ID for a resource, identified by its
	// kind ("film", "comment") and ID. Returns empty string when the
	// resource does not exist or has no owner.
	Owner(ctx context.Context, kind, id string) (string, error)
}

// NullResolver is an OwnerResolver that returns empty results.
// Used when ownership-based permissions are not needed; $own patterns
// then never match.
type NullResolver struct{}

// Owner always returns empty string.
func (NullResolver) Owner(_ context.Context, _, _ string) (string, error) {
	return "", nil
}
