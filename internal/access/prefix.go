// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access

// Subject prefix constants identify the type of entity making a request.
const (
	SubjectUser   = "user:"
	SubjectSystem = "system"
)

// SubjectGuest identifies unauthenticated requests. Guests carry the
// guest role's read-only powers and own nothing; real user IDs are
// ULIDs, so the pseudo-ID cannot collide.
const SubjectGuest = SubjectUser + "guest"

// Resource prefix constants identify the type of entity being accessed.
const (
	ResourceFilm    = "film:"
	ResourceComment = "comment:"
	ResourceRating  = "rating:"
	ResourceUser    = "user:"
)

// UserSubject returns a properly formatted user subject identifier.
// Panics if userID is empty, since an empty subject bypasses access control.
func UserSubject(userID string) string {
	if userID == "" {
		panic("access.UserSubject: empty userID would bypass access control")
	}
	return SubjectUser + userID
}

// FilmResource returns a properly formatted film resource identifier.
// It panics if filmID is empty.
func FilmResource(filmID string) string {
	if filmID == "" {
		panic("access.FilmResource: empty filmID would create invalid resource reference")
	}
	return ResourceFilm + filmID
}

// CommentResource returns a properly formatted comment resource identifier.
// It panics if commentID is empty.
func CommentResource(commentID string) string {
	if commentID == "" {
		panic("access.CommentResource: empty commentID would create invalid resource reference")
	}
	return ResourceComment + commentID
}

// UserResource returns a properly formatted user resource identifier.
// Note: ResourceUser has the same string value as SubjectUser ("user:").
// This is intentional: a user can be both a subject (who is acting) and a
// resource (what is being acted upon).
// Panics if userID is empty, since an empty resource creates an invalid reference.
func UserResource(userID string) string {
	if userID == "" {
		panic("access.UserResource: empty userID would create invalid resource reference")
	}
	return ResourceUser + userID
}
