package contract

import "errors"

// ErrNotFound is returned by write operations that target a missing row.
var ErrNotFound = errors.New("record not found")
