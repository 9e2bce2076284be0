// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with an existing entity,
// such as registering an email that is already taken.
var ErrConflict = errors.New("conflict")
