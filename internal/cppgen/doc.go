// Package cppgen renders an optimized declaration module as a single C++
// header: forward declarations for every generated template, error holders
// with their static_assert check, the template definitions and the
// module-level bindings, plus exactly one runtime include. Output is
// byte-for-byte deterministic.
package cppgen
