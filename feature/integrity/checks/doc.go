// Package checks implements the individual integrity checks: the on-disk layout,
// the model bucket and the load history schema.
package checks
