package documents

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrCaseNotFound    = errors.New("case not found")
	ErrUnsupportedMime = errors.New("unsupported media type")
	ErrInvalidInput    = errors.New("invalid input")
)
