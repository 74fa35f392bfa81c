package command

import "errors"

var (
	ErrQueueFull   = errors.New("command: queue full")
	ErrQueueClosed = errors.New("command: queue closed")
	ErrSyntax      = errors.New("command: invalid syntax")
	ErrUnknown     = errors.New("command: unknown command")
)
