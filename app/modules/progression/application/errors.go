package progressionservice

import "errors"

var (
	ErrUnknownFaction = errors.New("unknown faction")
)
