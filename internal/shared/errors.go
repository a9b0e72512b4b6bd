package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidURL      = fmt.Errorf("invalid video URL")
	ErrInvalidQuality  = fmt.Errorf("invalid audio quality")

	// Conversion errors
	ErrProbeTimeout   = fmt.Errorf("video info check timed out")
	ErrUnavailable    = fmt.Errorf("video unavailable")
	ErrBlocked        = fmt.Errorf("download requests blocked upstream")
	ErrExhausted      = fmt.Errorf("all conversion strategies failed")
	ErrOverallTimeout = fmt.Errorf("conversion timed out")
	ErrInternal       = fmt.Errorf("internal error")

	// Service errors
	ErrToolNotFound       = fmt.Errorf("external tool not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Persistence errors
	ErrNotFound = fmt.Errorf("record not found")
)
