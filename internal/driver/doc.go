// Package driver orchestrates the pipeline: source loading, frontend, IR1
// construction, lowering over the contract arena, optimization and C++
// emission, plus artifact input/output around it.
package driver
