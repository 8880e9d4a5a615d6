package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoSnapshot = errors.New("no clustering snapshot built yet")
	ErrNotStarted = errors.New("service not started")
)
