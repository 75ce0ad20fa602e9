package service

import "errors"

var (
	ErrInvalidID         = errors.New("invalid task id")
	ErrInvalidStatus     = errors.New("invalid target status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInFlight          = errors.New("status update already in flight")
	ErrRefreshFailed     = errors.New("status updated but refresh failed")
	ErrWriterNil         = errors.New("status writer is nil")
	ErrStoreNil          = errors.New("task store is nil")
	ErrPoolNil           = errors.New("task pool is nil")
)
