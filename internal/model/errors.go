package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ErrValidation is wrapped by every input validation failure
	ErrValidation = errors.New("validation failed")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidRating  = fmt.Errorf("%w: rating must be a number between 0 and 5 in steps of 0.5", ErrValidation)

	// Game errors
	ErrInvalidTeams = fmt.Errorf("%w: team1Players and team2Players are required and must be arrays", ErrValidation)

	// ErrStorage wraps unexpected backend faults surfaced by the services
	ErrStorage = errors.New("storage failure")
)
