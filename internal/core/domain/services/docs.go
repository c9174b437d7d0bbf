// Package services contains stateless domain services that coordinate
// multiple aggregates. The dispatch matcher selects the nearest eligible
// courier for a ready order; it is a pure function over the snapshots it is
// given, which keeps the scoring logic testable without any infrastructure.
package services
