package domain

import "errors"

// ErrCommandNotFound is returned when a command name cannot be found in a store.
var ErrCommandNotFound = errors.New("command not found")

// ErrInvalidCommand is returned when a command cannot be stored (e.g. empty name).
var ErrInvalidCommand = errors.New("invalid command")
