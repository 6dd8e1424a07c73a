package service

import (
	"fmt"

	"surfsup-api/internal/modules/climate/types"
)

// InvalidInput tells which part of a stats request was rejected.
type InvalidInput int

const (
	// InvalidDate is a single-date request whose date has no rows.
	InvalidDate InvalidInput = iota
	InvalidStart
	InvalidEnd
	InvalidStartAndEnd
	// StartAfterEnd is a range whose dates both exist but are reversed.
	StartAfterEnd
)

// InvalidDateRangeError is returned when a stats request names dates that do
// not select any stored measurements. Bounds is the full stored date range so
// the caller can correct the input.
type InvalidDateRangeError struct {
	Kind   InvalidInput
	Start  string
	End    string
	Bounds types.DateBounds
}

func (e *InvalidDateRangeError) Error() string {
	rng := fmt.Sprintf("Date Range is %s to %s", e.Bounds.Min, e.Bounds.Max)
	switch e.Kind {
	case InvalidStart:
		return fmt.Sprintf("Input Start Date %s not valid. %s", e.Start, rng)
	case InvalidEnd:
		return fmt.Sprintf("Input End Date %s not valid. %s", e.End, rng)
	case InvalidStartAndEnd:
		return fmt.Sprintf("Input Start %s and End Date %s not valid. %s", e.Start, e.End, rng)
	case StartAfterEnd:
		return fmt.Sprintf("Input Start %s is after End Date %s. %s", e.Start, e.End, rng)
	default:
		return fmt.Sprintf("Input Date %s not valid. %s", e.Start, rng)
	}
}
