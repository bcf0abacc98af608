package models

import "errors"

// Error kinds shared by services and storage. Wrap them with context and
// classify with errors.Is at the transport boundary.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)
