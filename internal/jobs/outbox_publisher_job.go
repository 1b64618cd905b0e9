package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/commands"
	"production/internal/metrics"

	"github.com/robfig/cron/v3"
)

// OutboxPublisher is satisfied by commands.PublishOutboxCommandHandler.
type OutboxPublisher interface {
	Handle(ctx context.Context, command commands.PublishOutboxCommand) (int, error)
}

// OutboxPublisherJob drains the outbox to the message bus on a schedule.
type OutboxPublisherJob struct {
	handler   OutboxPublisher
	schedule  string
	batchSize int
	metrics   *metrics.ProductionMetrics
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxPublisherJob(
	handler OutboxPublisher,
	schedule string,
	batchSize int,
	m *metrics.ProductionMetrics,
	logger *slog.Logger,
) *OutboxPublisherJob {
	return &OutboxPublisherJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		metrics:   m,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_publisher_job"),
	}
}

// Start schedules the publisher. A bad schedule or batch size is reported here, not on the first tick.
func (j *OutboxPublisherJob) Start() error {
	if _, err := commands.NewPublishOutboxCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox publisher job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxPublisherJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox publisher job stopped")
}

func (j *OutboxPublisherJob) run(ctx context.Context) {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox publisher job misconfigured", "error", err)
		return
	}

	n, err := j.handler.Handle(ctx, cmd)
	j.metrics.RecordPublished(n)
	if err != nil {
		j.metrics.RecordPublishFailure()
		j.logger.ErrorContext(ctx, "Outbox publisher job failed", "published", n, "error", err)
		return
	}
	if n > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "published", n)
	}
}
