package field

import "errors"

var (
	// ErrIndexOutOfRange is returned for any particle or ring access outside
	// the computed layout. Seeing it means the layout invariant was broken.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrConfiguration is returned when layout parameters cannot produce rings.
	ErrConfiguration = errors.New("configuration error")
)
