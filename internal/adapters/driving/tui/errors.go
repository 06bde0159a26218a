package tui

import "errors"

// ErrMissingDirectory is returned when the role directory is not provided.
var ErrMissingDirectory = errors.New("tui: role directory is required")

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui: stdin is not a terminal")
