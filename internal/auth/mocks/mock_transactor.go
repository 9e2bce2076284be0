// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package mocks

import (
	"context"

	"github.com/cinedex/cinedex/internal/auth"
)

// TxPassthrough is a Transactor that runs the callback directly, with no
// real transaction underneath. The callback's error is returned unchanged,
// which is the behavior service tests rely on.
type TxPassthrough struct{}

func (TxPassthrough) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// TxFail is a Transactor whose transactions fail to begin; the callback is
// never invoked.
type TxFail struct {
	Err error
}

func (t TxFail) InTransaction(_ context.Context, _ func(ctx context.Context) error) error {
	return t.Err
}

var (
	_ auth.Transactor = TxPassthrough{}
	_ auth.Transactor = TxFail{}
)
