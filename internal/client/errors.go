package client

import "errors"

var (
	ErrNoCommand        = errors.New("no command given")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrNothingToUpdate  = errors.New("nothing to update")
)
