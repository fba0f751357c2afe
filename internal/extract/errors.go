package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult reports that the generation backend answered with no
	// payload at all. Distinct from a malformed payload so callers can
	// choose to retry only this case.
	ErrEmptyResult = errors.New("extraction returned no data")

	// ErrMissingCredential reports that no API key is configured for the
	// generation backend.
	ErrMissingCredential = errors.New("missing extraction API key")
)

// DataFormatError reports a payload that could not be parsed into the
// itinerary schema.
type DataFormatError struct {
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("itinerary data not parseable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("itinerary data not parseable: %s", e.Reason)
}

func (e *DataFormatError) Unwrap() error { return e.Err }
