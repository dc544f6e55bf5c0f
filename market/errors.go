package market

import "errors"

// Error kinds shared by the whole pipeline. Callers classify failures with
// errors.Is; messages carry the offending parameter or row.
var (
	// ErrInvalidParameter reports bad numeric arguments: non-positive
	// periods, fast >= slow, non-positive capital.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData reports a series too short for the requested
	// computation.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformedInput reports boundary-layer parsing or validation
	// failures. The core never raises it; loaders and fetchers do.
	ErrMalformedInput = errors.New("malformed input")
)
