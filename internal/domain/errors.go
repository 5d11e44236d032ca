package domain

import "github.com/cockroachdb/errors"

// ErrNotFound is returned by stores when no row matches.
var ErrNotFound = errors.New("not found")
