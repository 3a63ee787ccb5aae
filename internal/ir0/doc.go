// Package ir0 models the low-level template IR: named declarations with a
// main definition and partial specializations, whose bodies bind the
// value/type result and the error member. It is the form the optimizer works
// on and the code generator prints.
package ir0
