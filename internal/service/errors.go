package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrBadInput         = errors.New("bad input")
	ErrAlreadyConnected = errors.New("client already connected to this session")
)
