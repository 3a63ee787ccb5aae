// Package opt optimizes the template declaration graph: bounded constant
// elaboration of module globals, hash-consing of structurally identical
// declarations, first-argument-selection reduction and eager error-sentinel
// propagation. Passes preserve every observable instantiation result.
package opt
