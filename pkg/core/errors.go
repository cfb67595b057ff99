package core

import "errors"

// ErrInvalidParameter marks an out-of-range or missing input detected at
// Parameters construction. A run failing this way is never solved.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrEmptyIndexSet marks a run with zero fields or zero crops. The
// resulting program would be vacuous and any feasibility result
// meaningless, so the run fails fast before a solver call.
var ErrEmptyIndexSet = errors.New("empty index set")
