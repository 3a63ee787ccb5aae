// Package ast defines the arena-backed syntax tree produced by the parser.
// Nodes are addressed by 1-based uint32 IDs (0 is the "no node" sentinel) and
// never mutated after parsing; the IR1 builder consumes them read-only.
package ast
