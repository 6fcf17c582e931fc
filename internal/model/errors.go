package model

import "errors"

// Estimation errors.
var (
	ErrDataUnavailable      = errors.New("weather data unavailable")
	ErrConfigurationInvalid = errors.New("invalid configuration")
	ErrComputationFault     = errors.New("computation fault")
)
