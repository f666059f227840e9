package seasonservice

import "errors"

var (
	ErrSeasonNotActive     = errors.New("no seasonal fight is active")
	ErrSeasonAlreadyActive = errors.New("a seasonal fight is already active")
	ErrUnknownFaction      = errors.New("unknown faction")
	ErrUnknownAction       = errors.New("unknown vote action")
	ErrFactionDefeated     = errors.New("faction is defeated for the day")
	ErrPowerNotUnlocked    = errors.New("faction power is not unlocked")
	ErrPowerAlreadyUsed    = errors.New("faction power was already used this season")
	ErrAlreadyResolved     = errors.New("today's resolution already ran")
)
