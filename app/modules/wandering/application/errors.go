package wanderingservice

import "errors"

var (
	ErrEventActive       = errors.New("a wandering event is already active")
	ErrNoEvent           = errors.New("no such wandering event")
	ErrEventEnded        = errors.New("the wandering event has already ended")
	ErrAlreadyResolved   = errors.New("the wandering event is already resolved")
	ErrUnknownDifficulty = errors.New("unknown event difficulty")
	ErrNoFaction         = errors.New("join a faction before hunting")
)
