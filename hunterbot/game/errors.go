package game

import "errors"

// Business outcomes are sentinel errors so callers can map each one to
// user-facing text with errors.Is. Anything else bubbling out of the
// stores is infrastructure failure; wrapped context.DeadlineExceeded is
// the only class worth retrying.
var (
	ErrNotFound         = errors.New("not found")
	ErrNoActiveSpawn    = errors.New("no active spawn")
	ErrSpawnBlocked     = errors.New("unclaimed spawn blocks a new one")
	ErrNoCardsAvailable = errors.New("no cards available")
	ErrAlreadyClaimed   = errors.New("spawn already claimed")
	ErrWrongGuess       = errors.New("wrong guess")
	ErrCapacityFull     = errors.New("inventory capacity reached")
	ErrNotOwned         = errors.New("card not owned")
	ErrNoLongerOwned    = errors.New("sender no longer owns the card")
	ErrOfferResolved    = errors.New("gift offer already resolved")
	ErrUnauthorized     = errors.New("not allowed")
	ErrInvalidInput     = errors.New("invalid input")
)
