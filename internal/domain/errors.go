package domain

import "errors"

var (
	ErrIndexNotFound    = errors.New("index not found")
	ErrIndexExists      = errors.New("index already exists")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrQueryTooShort    = errors.New("query too short")
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrUnsupportedField = errors.New("unsupported field")
)
