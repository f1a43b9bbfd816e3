// Package types defines the Frame and Store interfaces, record types,
// and standard error types for the hallmark discovery system.
// Implements: prd001-frame-core (Record, Frame, filter semantics, error types);
//
//	docs/ARCHITECTURE § Data Model, § System Components (Frame API).
package types
