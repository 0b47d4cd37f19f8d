package utils

import "errors"

var (
	ErrorRecordNotFound   = errors.New("record not found")
	ErrorInvalidDateRange = errors.New("invalid date range")
	ErrorInvalidStateCode = errors.New("invalid state code")
)
