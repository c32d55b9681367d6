package db

import "errors"

var (
	// database errs.
	ErrDBPathEmpty    = errors.New("database path is empty")
	ErrDriverUnknown  = errors.New("unknown sqlite driver")
	ErrTableNoColumns = errors.New("table has no columns")
)

var (
	// query errs.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNoData            = errors.New("no data provided")
	ErrNoCriteria        = errors.New("no criteria provided")
)
