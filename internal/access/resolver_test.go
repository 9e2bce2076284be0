// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/access"
)

func TestNullResolver(t *testing.T) {
	owner, err := access.NullResolver{}.Owner(context.Background(), "film", "01ABC")
	require.NoError(t, err)
	assert.Empty(t, owner)
}
