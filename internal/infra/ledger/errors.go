package ledger

import "errors"

var (
	ErrInvalidRecordData = errors.New("invalid dispatch record data")
	ErrEmptyPairKey      = errors.New("event id and user id are required")
)
