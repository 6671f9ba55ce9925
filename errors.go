package flightpath

import (
	"errors"
	"fmt"

	"github.com/solarlune/flightpath/math32"
)

var (
	ErrTooFewWaypoints     = errors.New("curve needs at least two waypoints")
	ErrNegativeIterations  = errors.New("smoothing iterations can't be negative")
	ErrDegenerateCurve     = errors.New("curve has zero length or non-finite points")
	ErrAmbiguousCurve      = errors.New("curve sets both a wave and waypoints")
	ErrEmptyWindow         = errors.New("phase window must end after it starts")
	ErrUnorderedWindows    = errors.New("phase windows must be sorted by start")
	ErrWindowGap           = errors.New("phase windows must be contiguous and only overlap their neighbour")
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
	ErrInvalidPages        = errors.New("page count must be greater than zero")
	ErrNonPositiveRate     = errors.New("smoothing rate must be greater than zero")
	ErrNodeNotFound        = errors.New("node not found")
)

// ConfigError names the tuning field that failed validation. It unwraps to one of the Err* sentinels above,
// so callers can use errors.Is.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("flightpath: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(field string, err error) error {
	return &ConfigError{Field: field, Err: err}
}

// prefixField prepends prefix to the Field of a *ConfigError, or wraps any other error in a new one.
func prefixField(prefix string, err error) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return &ConfigError{Field: prefix + "." + cfgErr.Field, Err: cfgErr.Err}
	}
	return configErr(prefix, err)
}

func positiveDuration(field string, d float32) error {
	if !(d > 0) || math32.IsInf(d, 1) {
		return configErr(field, fmt.Errorf("%v: %w", d, ErrNonPositiveDuration))
	}
	return nil
}

func positiveRate(field string, k float32) error {
	if !(k > 0) || math32.IsInf(k, 1) {
		return configErr(field, fmt.Errorf("%v: %w", k, ErrNonPositiveRate))
	}
	return nil
}
