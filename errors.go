package main

import "errors"

var (
	// ErrInvalidIncome is returned for a missing, negative or non-finite income
	ErrInvalidIncome = errors.New("invalid income")
	// ErrDivisionByZeroSavingsPercent is returned when the baseline regime charges no tax
	ErrDivisionByZeroSavingsPercent = errors.New("savings percent undefined: baseline tax is zero")
	// ErrInvalidBracketSize is returned for a sweep step that is not a positive finite number
	ErrInvalidBracketSize = errors.New("invalid bracket size")
	// ErrUnknownRegime is returned by RegimeByID for identifiers with no built-in table
	ErrUnknownRegime = errors.New("unknown regime")
)

// ValidationError describes a rejected configuration or input value
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
