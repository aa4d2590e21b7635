package cases

import "errors"

var (
	ErrNotFound       = errors.New("case not found")
	ErrClientNotFound = errors.New("client not found")
)
