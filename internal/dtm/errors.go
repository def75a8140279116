package dtm

import "errors"

var (
	// ErrInvalidInput is returned when a token stream or triples file
	// contains an empty document id, an empty term, or a bad count.
	ErrInvalidInput = errors.New("dtm: invalid input")
)
