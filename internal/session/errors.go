package session

import "errors"

// Error messages for sentinel errors.
const (
	ErrMsgNotAuthenticated = "not authenticated"
	ErrMsgUnknownCourse    = "unknown course"
	ErrMsgUnknownReview    = "unknown review"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgEmailTaken       = "email already registered"
)

var (
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)
	ErrUnknownCourse    = errors.New(ErrMsgUnknownCourse)
	ErrUnknownReview    = errors.New(ErrMsgUnknownReview)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrEmailTaken       = errors.New(ErrMsgEmailTaken)
)
