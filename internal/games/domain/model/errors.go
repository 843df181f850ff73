package model

import "errors"

var (
	ErrMissingField     = errors.New("fen and title are required")
	ErrPositionNotFound = errors.New("position not found")
	ErrOwnerNotFound    = errors.New("user not found")
)
