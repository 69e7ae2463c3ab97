//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package mpsierr defines the error taxonomy shared by the solver,
// vole, oprf, opprf and mpsi packages.
//
// The original implementation this module is derived from wraps
// nearly every fallible call with
// `.with_context(|| format!("@{}:{}", file!(), line!()))`, so that an
// error's message accumulates a call-site breadcrumb trail as it
// propagates. Wrap is the Go analogue, using runtime.Caller in place
// of the compile-time file!()/line!() macros and %w in place of
// with_context's chained source.
package mpsierr
