package main

import "github.com/oklog/ulid/v2"

// NewCalculationID returns a sortable unique identifier for one calculation
func NewCalculationID() string {
	return ulid.Make().String()
}
