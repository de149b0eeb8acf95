package jobs

import (
	"context"
	"log/slog"

	"gharkakhana/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob periodically cancels Pending orders whose pickup moment
// has passed without the chef confirming them, returning their reserved
// inventory to the catalog. Runs every minute.
type OrderExpiryJob struct {
	handler commands.CancelExpiredOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderExpiryJob creates a new job for expiring stale orders.
func NewOrderExpiryJob(handler commands.CancelExpiredOrdersCommandHandler, logger *slog.Logger) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry job to run every minute.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCancelExpiredOrdersCommand()

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep finished with errors",
				"cancelled", cancelled, "error", handleErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Expired orders cancelled", "cancelled", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started (running every minute)")
	return nil
}

// Stop stops the order expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
