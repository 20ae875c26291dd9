package molecule

import "errors"

// ErrUnknownShape is returned by Describe for shapes outside the closed set
var ErrUnknownShape = errors.New("unknown molecule shape")
