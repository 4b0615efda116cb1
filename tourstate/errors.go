package tourstate

import "errors"

// ErrInvalidCycle indicates the slice passed to New is not a permutation of
// [0, len(cycle)).
var ErrInvalidCycle = errors.New("tourstate: cycle is not a valid permutation")
