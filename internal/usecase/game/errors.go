package game

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidBoard = errors.New("invalid board dimensions")
	ErrInvalidGoal  = errors.New("invalid goal count")
	ErrPlayerCount  = errors.New("a session needs exactly two players")
)
