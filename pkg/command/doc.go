// Package command implements the operator command that controls the
// exporter at runtime:
//
//	/prometheus start
//	/prometheus stop
//	/prometheus restart
//
// "prom" is accepted as an alias. Successful state changes are broadcast
// to all operators; asking for the current state again only answers the
// sender.
package command
