package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Logger is the subset of the process logger the console uses.
//
//go:generate mockgen -source=console.go -destination=mock_logger_test.go -package=command
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Console reads operator commands line by line, e.g. from stdin, and
// dispatches them to the command. The console operator has full
// permissions.
type Console struct {
	cmd    *Command
	out    io.Writer
	logger Logger
}

// NewConsole creates a console that writes replies to out.
func NewConsole(cmd *Command, out io.Writer, logger Logger) *Console {
	return &Console{cmd: cmd, out: out, logger: logger}
}

// PermissionLevel implements Sender.
func (c *Console) PermissionLevel() int { return MaxPermissionLevel }

// Reply implements Sender.
func (c *Console) Reply(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Broadcast implements Sender. Broadcasts are also logged.
func (c *Console) Broadcast(msg string) {
	fmt.Fprintln(c.out, msg)
	c.logger.Info(msg, nil, map[string]interface{}{"source": "console"})
}

// MaxPermissionLevel is the level of the console operator.
const MaxPermissionLevel = 4

// Dispatch runs one input line such as "/prometheus restart". Blank lines
// are ignored. A line ending in a tab, e.g. "/prometheus st\t", asks for
// completion instead: the candidates are replied on one line.
func (c *Console) Dispatch(ctx context.Context, line string) error {
	complete := strings.HasSuffix(line, "\t")
	line = strings.TrimPrefix(strings.TrimLeft(line, " \t"), "/")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if !c.cmd.Matches(fields[0]) {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	if complete {
		args := fields[1:]
		if trimmed := strings.TrimRight(line, "\t"); strings.HasSuffix(trimmed, " ") || len(args) == 0 {
			args = append(args, "")
		}
		c.Reply(strings.Join(c.cmd.Complete(args), " "))
		return nil
	}
	return c.cmd.Execute(ctx, c, fields[1:])
}

// Run dispatches every line of r until r is exhausted or ctx is done.
// Command errors are reported to the operator and do not stop the console.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := c.Dispatch(ctx, line); err != nil {
				c.report(err)
			}
		}
	}
}

func (c *Console) report(err error) {
	switch {
	case errors.Is(err, ErrUsage):
		c.Reply("Usage: " + Usage)
	case errors.Is(err, ErrUnknownCommand):
		c.Reply("Unknown command. Try " + Usage)
	default:
		c.Reply("Command failed: " + err.Error())
		c.logger.Warn("console command failed", err, nil)
	}
}
