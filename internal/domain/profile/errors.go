package profile

import "errors"

var (
	ErrNotFound         = errors.New("profile not found")
	ErrInvalidPayload   = errors.New("invalid profile payload")
	ErrInvalidEnum      = errors.New("value outside permitted set")
	ErrRevisionConflict = errors.New("profile revision conflict")
)
