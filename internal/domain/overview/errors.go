package overview

import "errors"

// Overview domain errors
var (
	ErrUnknownGroupBy           = errors.New("unknown group_by value")
	ErrUnknownThenBy            = errors.New("unknown then_by value")
	ErrGroupByInvalidForRange   = errors.New("group_by does not fit the resolved date range")
	ErrClientGroupingNotAllowed = errors.New("absence overviews cannot be grouped by client")
	ErrAbsenceTypeRequired      = errors.New("absence_type is required")
	ErrInvalidAbsenceType       = errors.New("absence_type must be an absence registration type")
	ErrUnauthorized             = errors.New("unauthorized to view another employee's overview")
)
