// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package mocks provides testify mocks for catalog interfaces.
//
// Each mock registers AssertExpectations as a test cleanup, so unmet
// expectations fail the test without an explicit assert call.
package mocks
