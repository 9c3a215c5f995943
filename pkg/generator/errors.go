// FILE: pkg/generator/errors.go
package generator

import "errors"

// Configuration errors. Both are fatal and must surface before a single byte
// reaches the output sink, so callers can still answer with a clean HTTP error.
var (
	ErrBaseManifest = errors.New("base template manifest unreadable")
	ErrBaseSchema   = errors.New("base template schema unreadable")
)
