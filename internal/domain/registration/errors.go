package registration

import "errors"

// Registration domain errors
var (
	ErrUnknownType          = errors.New("unknown registration type")
	ErrUnknownStatus        = errors.New("unknown registration status")
	ErrRegistrationNotFound = errors.New("registration not found")
)
