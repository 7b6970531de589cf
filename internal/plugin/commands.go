package plugin

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned by ExecuteCommand for unregistered ids.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand is returned when an id is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Command is a registered user action.
type Command struct {
	ID       string
	Name     string
	Callback func(ctx context.Context) error
}

// AddCommand registers c. Commands keep registration order.
func (p *Plugin) AddCommand(c Command) error {
	for _, existing := range p.commands {
		if existing.ID == c.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, c.ID)
		}
	}
	p.commands = append(p.commands, c)
	return nil
}

// Commands returns the registered commands in registration order.
func (p *Plugin) Commands() []Command {
	return append([]Command{}, p.commands...)
}

// ExecuteCommand runs the command registered under id.
func (p *Plugin) ExecuteCommand(ctx context.Context, id string) error {
	for _, c := range p.commands {
		if c.ID == id {
			return c.Callback(ctx)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
}
