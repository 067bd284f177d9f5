package model

import "errors"

// Common errors used across the application.
// None of these are fatal: the engine keeps its prior state when returning one.
var (
	// Roster errors
	ErrEmptyName     = errors.New("player name is empty")
	ErrDuplicateName = errors.New("player is already on the roster")
	ErrRosterFull    = errors.New("roster is full")
	ErrPlayerMissing = errors.New("player is not on the roster")

	// Draft errors
	ErrNotEnoughPlayers = errors.New("at least two players are required to draw")
	ErrInvalidDrawMode  = errors.New("invalid draw mode")
	ErrNothingToPause   = errors.New("no animated pick to pause")

	// Toss errors
	ErrNoTeams         = errors.New("teams have not been drawn")
	ErrTossPhase       = errors.New("toss is not in the required phase")
	ErrInvalidCoinFace = errors.New("call must be heads or tails")
	ErrInvalidSide     = errors.New("side must be attack or defense")
	ErrInvalidSideMode = errors.New("side mode must be coin or auto")

	// Settings errors
	ErrInvalidMapCount = errors.New("map count must be 1, 3 or 5")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")

	// Sound errors
	ErrUnknownCue = errors.New("unknown sound cue")
)
