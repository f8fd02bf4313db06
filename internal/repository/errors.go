package repository

import "errors"

// ErrNotFound is wrapped by every Get/Lookup when the row does not exist.
var ErrNotFound = errors.New("not found")
