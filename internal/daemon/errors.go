package daemon

import "errors"

// ErrConfigNil is returned when no configuration is passed.
var ErrConfigNil = errors.New("config is nil")
