// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with an existing entity,
// such as a second rating for the same (user, film) pair.
var ErrConflict = errors.New("conflict")

// ErrPermissionDenied is returned when an operation is not authorized.
var ErrPermissionDenied = errors.New("permission denied")
