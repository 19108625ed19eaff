package domain

import "errors"

var (
	ErrDispatchRecordNotFound = errors.New("dispatch record not found")
	ErrDispatchRecordConflict = errors.New("dispatch record changed concurrently")
	ErrDispatchRecordSent     = errors.New("dispatch record already sent")
	ErrInvalidTimeOfDay       = errors.New("invalid time of day")
)
