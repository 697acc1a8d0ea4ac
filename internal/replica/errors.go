package replica

import "errors"

var (
	ErrNotFound    = errors.New("file not found in replica")
	ErrInvalidPath = errors.New("path is not local to the replica root")
	ErrNotADir     = errors.New("replica root is not a directory")
)
