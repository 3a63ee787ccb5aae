// Package diag defines the structured diagnostics shared by every pipeline
// stage: stable codes grouped by stage, severities, a capped Bag collector and
// the Reporter contract. Determinism matters here: the Bag sorts and dedups so
// that the same input always prints the same diagnostics in the same order.
package diag
