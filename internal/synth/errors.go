package synth

import "errors"

// Sentinel errors. Constructors wrap them with the offending value.
var (
	ErrInvalidDescriptor = errors.New("invalid event descriptor")
	ErrInvalidGrid       = errors.New("invalid time grid")
	ErrInvalidParams     = errors.New("invalid synthesis parameters")
)
