package query

import "github.com/pkg/errors"

var (
	// ErrUnknownOperator is returned for a text operator with no printer
	ErrUnknownOperator = errors.New("unknown text operator")

	// ErrUnknownDateRange is returned for a date range with no printer
	ErrUnknownDateRange = errors.New("unknown date range")

	// ErrUnknownSortOrder is returned for a sort order other than Ascending or Descending
	ErrUnknownSortOrder = errors.New("unknown sort order")

	// ErrMissingDate is returned when a "Within the dates" range lacks a bound
	ErrMissingDate = errors.New("missing date bound")
)
