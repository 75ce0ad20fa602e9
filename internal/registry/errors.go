package registry

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
)
