package exporter

import "errors"

var (
	// ErrAlreadyRunning is returned by Start when the exporter is running.
	ErrAlreadyRunning = errors.New("exporter: already running")

	// ErrNotRunning is returned by Stop and Gather when the exporter is stopped.
	ErrNotRunning = errors.New("exporter: not running")
)
