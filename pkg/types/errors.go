package types

import "errors"

// Template and resolution errors (prd002-template-engine R6).
var (
	ErrBadTemplate  = errors.New("malformed template")
	ErrUnknownSpec  = errors.New("unknown type specifier")
	ErrDuplicateKey = errors.New("duplicate placeholder name")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNoMatch      = errors.New("string does not match template")
	ErrUnresolvable = errors.New("template cannot be resolved with the given bindings")
)

// Frame operation errors (prd001-frame-core R7).
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrInvalidFilter = errors.New("invalid filter value type")
	ErrTooManyValues = errors.New("more positional values than placeholders")
)

// Store lifecycle and operation errors (prd003-snapshot-store R7).
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("snapshot not found")
	ErrInvalidID       = errors.New("invalid snapshot ID")
)
