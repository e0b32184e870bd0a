package model

import "errors"

var (
	// ErrFile reports an input that is missing or cannot be read.
	ErrFile = errors.New("file error")
	// ErrSchema reports a reference or lookup file without an expected column.
	ErrSchema = errors.New("schema error")
	// ErrLookup reports a protocol number absent from the protocol table.
	ErrLookup = errors.New("lookup error")
)
