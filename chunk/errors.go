package chunk

import "errors"

var (
	// ErrInvalidSize signals a target chunk length outside (0, MaxSize].
	ErrInvalidSize = errors.New("chunk: invalid chunk size")
)
