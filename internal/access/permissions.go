// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access

// Permission groups define reusable sets of permissions.
// Roles compose these groups rather than inheriting.
//
// Two tokens resolve at evaluation time: $self is the subject's own ID,
// $own matches an identified resource only when the subject owns it
// (looked up through the OwnerResolver).

// RoleGuest is evaluated for requests with no bearer token. It is not a
// stored account role; the HTTP layer assigns it when nobody is signed in.
const RoleGuest = "guest"

// guestPowers cover unauthenticated browsing: the film catalog is
// public, everything else requires an account.
var guestPowers = []string{
	"read:film:*",
}

var memberPowers = []string{
	// Catalog browsing
	"read:film:*",
	"read:comment:*",
	"read:rating:*",
	"read:user:*",

	// Contributions
	"create:film",
	"create:comment",
	"create:rating",
	"create:favorite",

	// Self-scoped mutations: ratings and favorites are addressed through
	// the caller's own user ID only.
	"update:rating",
	"delete:rating",
	"delete:favorite",

	// Own content
	"update:film:$own",
	"delete:film:$own",
	"delete:comment:$own",
	"update:user:$self",
}

var adminPowers = []string{
	// Full access
	"read:**",
	"create:**",
	"update:**",
	"delete:**",
}

// DefaultRoles returns the default role definitions.
// Roles compose permission groups explicitly (no inheritance).
func DefaultRoles() map[string][]string {
	return map[string][]string{
		RoleGuest: guestPowers,
		"member":  memberPowers,
		"admin":   compose(memberPowers, adminPowers),
	}
}

// compose merges multiple permission slices into one.
func compose(groups ...[]string) []string {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	result := make([]string, 0, total)
	for _, g := range groups {
		result = append(result, g...)
	}
	return result
}
