package event

import "errors"

var ErrEventNotFound = errors.New("event not found")
var ErrEventAlreadyExists = errors.New("event already exists")
var ErrEventExpired = errors.New("event no longer accepts responses")
var ErrInvalidInput = errors.New("invalid input")

// ErrStorageUnavailable marks failures of the persistence layer. They are retryable
// and must never be reported as an empty event.
var ErrStorageUnavailable = errors.New("storage unavailable")
