// Package types holds the value-kind model shared by the type checker and
// every IR: Bool, Int64, Type references, List/Set containers, function
// signatures and the error kind. Kinds are interned, so the rest of the
// compiler compares them by pointer and uses Key() strings wherever a
// canonical, serializable identity is needed.
package types
