package domain

import "errors"

var (
	// ErrUnknownZone is returned when a zone ID is not in the catalog.
	ErrUnknownZone = errors.New("unknown zone")

	// ErrUnknownProjection is returned for a scenario/horizon pair the zone has no data for.
	ErrUnknownProjection = errors.New("unknown scenario or horizon")

	// ErrInvalidIndicator marks a record with a missing or non-finite field.
	ErrInvalidIndicator = errors.New("invalid indicator record")

	// ErrInvalidTable marks a control-point table whose x values are not strictly increasing.
	ErrInvalidTable = errors.New("invalid control-point table")

	// ErrInvalidRequest marks a scenario request that cannot be simulated.
	ErrInvalidRequest = errors.New("invalid scenario request")
)
