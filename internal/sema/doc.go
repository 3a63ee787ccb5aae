// Package sema is the static type checker. It resolves written annotations to
// interned kinds, binds names scope by scope, checks intrinsic and user calls,
// unifies conditional branches and verifies that every path returns. It
// collects as many diagnostics per run as it can; the pipeline refuses to go
// past the frontend when any error was reported.
package sema
