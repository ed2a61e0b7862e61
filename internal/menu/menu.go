// Package menu implements the interactive numbered menu of the orders report.
package menu

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Action is one numbered menu entry.
type Action struct {
	Key   int
	Title string
	Run   func(ctx context.Context, c *Console) error
}

// Menu repeatedly shows its actions and runs the chosen one until the user
// picks 0 or the input ends.
type Menu struct {
	console *Console
	actions []Action
}

// New creates a Menu. Keys of actions must be unique and non-zero.
func New(console *Console, actions []Action) *Menu {
	return &Menu{console: console, actions: actions}
}

func (m *Menu) print() {
	for _, a := range m.actions {
		m.console.Printf("%d. %s\n", a.Key, a.Title)
	}
	m.console.Println("0. Exit")
}

func (m *Menu) find(key int) (Action, bool) {
	for _, a := range m.actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

// Run drives the menu loop. Action failures are reported to the user and the
// loop continues. Run returns nil on exit or end of input.
func (m *Menu) Run(ctx context.Context) error {
	lg := zctx.From(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.print()
		choice, err := m.console.ReadInt("Choose an option")
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrInvalidInput):
			m.console.Println("Incorrect choice!")
			continue
		case err != nil:
			return errors.Wrap(err, "read choice")
		}

		if choice == 0 {
			m.console.Println("Have a nice day!")
			return nil
		}
		a, ok := m.find(choice)
		if !ok {
			m.console.Println("Incorrect choice!")
			continue
		}

		if err := a.Run(ctx, m.console); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lg.Warn("Action failed", zap.Int("action", a.Key), zap.Error(err))
			m.console.Printf("Error: %v\n", err)
		}
	}
}
