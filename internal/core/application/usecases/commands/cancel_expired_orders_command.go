package commands

import (
	"errors"

	"gharkakhana/internal/pkg/guard"
)

var ErrCancelExpiredOrdersCommandIsNotConstructed = errors.New(
	"CancelExpiredOrdersCommand must be created via NewCancelExpiredOrdersCommand constructor",
)

// CancelExpiredOrdersCommand requests cancellation of all orders that are
// still Pending after their declared pickup moment has passed. This is a
// parameterless sweep executed periodically by the expiry job.
type CancelExpiredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewCancelExpiredOrdersCommand creates the sweep command.
func NewCancelExpiredOrdersCommand() CancelExpiredOrdersCommand {
	return CancelExpiredOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c CancelExpiredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelExpiredOrdersCommandIsNotConstructed)
}
