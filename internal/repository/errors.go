package repository

import "errors"

// ErrNotFound is returned when an identifier does not resolve to a stored
// document. Services surface it distinctly from validation and server
// faults.
var ErrNotFound = errors.New("document not found")
