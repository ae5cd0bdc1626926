// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build ggdebug

package render

// DebugChecks enables per-call GPU error checking in the backends.
const DebugChecks = true
