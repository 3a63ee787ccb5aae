// Package ir1 is the high-level intermediate representation: pure functions
// over typed values with explicit recursion, conditionals and the primitive
// sequence/set operations. The builder folds each checked function body into
// a single expression tree, substituting single-assignment locals at their
// use sites; everything it produces is immutable.
package ir1
