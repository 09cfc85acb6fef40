package game

import "errors"

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomExists = errors.New("room already exists")
)
