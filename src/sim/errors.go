package sim

import "errors"

// Error kinds surfaced by the command/query surface. Transports map these
// onto their own status codes with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")
)
