// FILE: internal/service/errors.go
package service

import "errors"

var ErrOrderNotFound = errors.New("order not found")
