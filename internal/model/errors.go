package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Team errors
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamNameTaken   = errors.New("team name already taken")
	ErrTeamPrefixTaken = errors.New("team prefix already taken")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerNameTaken = errors.New("player name already taken")

	// Alliance errors
	ErrAllianceNotFound = errors.New("alliance not found")
	ErrAllianceExists   = errors.New("alliance between these teams already exists")

	// Feed errors
	ErrEventNotFound       = errors.New("server event not found")
	ErrChatMessageNotFound = errors.New("chat message not found")
)
