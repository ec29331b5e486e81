package command

import "errors"

var (
	// ErrUsage is returned for a wrong number of arguments or an unknown
	// subcommand.
	ErrUsage = errors.New("command: usage: " + Usage)

	// ErrPermissionDenied is returned when the sender's permission level is
	// below the configured threshold.
	ErrPermissionDenied = errors.New("command: permission denied")

	// ErrUnknownCommand is returned by Console for input that names no
	// registered command.
	ErrUnknownCommand = errors.New("command: unknown command")
)
