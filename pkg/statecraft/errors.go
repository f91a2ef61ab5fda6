package statecraft

import "errors"

// ErrNoChannel indicates a unit tried to dispatch without a channel.
var ErrNoChannel = errors.New("unit has no channel")
