package model

import "errors"

var (
	ErrOutOfBounds      = errors.New("square out of bounds")
	ErrGameFull         = errors.New("game is full")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrNotConnected     = errors.New("player not connected")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrQueueShort       = errors.New("not enough players queued")
)
