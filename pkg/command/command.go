package command

import (
	"context"
	"fmt"
	"strings"
)

const (
	Name  = "prometheus"
	Usage = "/prometheus <start|stop|restart>"

	MsgStartSuccess = "Prometheus exporter started."
	MsgStartInvalid = "Prometheus exporter is already running."
	MsgStopSuccess  = "Prometheus exporter stopped."
	MsgStopInvalid  = "Prometheus exporter is already stopped."
)

// Subcommands in the order offered for completion.
var Subcommands = []string{"restart", "start", "stop"}

// Lifecycle is the part of the exporter the command controls.
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Running() bool
}

// Sender is whoever issued the command.
type Sender interface {
	PermissionLevel() int

	// Reply sends a message to the sender only.
	Reply(msg string)

	// Broadcast notifies the sender and every other operator.
	Broadcast(msg string)
}

// Command starts, stops and restarts the exporter at runtime.
type Command struct {
	exporter        Lifecycle
	permissionLevel int
}

// New creates the command. Senders below permissionLevel are refused.
func New(exporter Lifecycle, permissionLevel int) *Command {
	return &Command{exporter: exporter, permissionLevel: permissionLevel}
}

func (c *Command) Name() string { return Name }

func (c *Command) Aliases() []string { return []string{"prom"} }

func (c *Command) Usage() string { return Usage }

// PermissionLevel returns the level a sender needs.
func (c *Command) PermissionLevel() int { return c.permissionLevel }

// Matches reports whether name is the command name or one of its aliases.
func (c *Command) Matches(name string) bool {
	if name == Name {
		return true
	}
	for _, a := range c.Aliases() {
		if name == a {
			return true
		}
	}
	return false
}

// Execute runs the subcommand in args. args excludes the command name.
func (c *Command) Execute(ctx context.Context, sender Sender, args []string) error {
	if sender.PermissionLevel() < c.permissionLevel {
		return ErrPermissionDenied
	}
	if len(args) != 1 {
		return ErrUsage
	}

	switch args[0] {
	case "start":
		return c.start(ctx, sender)
	case "stop":
		return c.stop(ctx, sender)
	case "restart":
		if err := c.stop(ctx, sender); err != nil {
			return err
		}
		return c.start(ctx, sender)
	default:
		return ErrUsage
	}
}

// Complete returns the subcommands matching the last word when exactly one
// argument is being typed, and nil otherwise.
func (c *Command) Complete(args []string) []string {
	if len(args) != 1 {
		return nil
	}
	var out []string
	for _, s := range Subcommands {
		if strings.HasPrefix(s, strings.ToLower(args[0])) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Command) start(ctx context.Context, sender Sender) error {
	if c.exporter.Running() {
		sender.Reply(MsgStartInvalid)
		return nil
	}
	if err := c.exporter.Start(ctx); err != nil {
		return fmt.Errorf("command: start exporter: %w", err)
	}
	sender.Broadcast(MsgStartSuccess)
	return nil
}

func (c *Command) stop(ctx context.Context, sender Sender) error {
	if !c.exporter.Running() {
		sender.Reply(MsgStopInvalid)
		return nil
	}
	if err := c.exporter.Stop(ctx); err != nil {
		return fmt.Errorf("command: stop exporter: %w", err)
	}
	sender.Broadcast(MsgStopSuccess)
	return nil
}
