package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/commands"
	"production/internal/metrics"

	"github.com/robfig/cron/v3"
)

// PieceAuditor is satisfied by commands.RebuildPieceStateCommandHandler.
type PieceAuditor interface {
	Handle(ctx context.Context, command commands.RebuildPieceStateCommand) (commands.RebuildPieceStateResult, error)
}

// PieceAuditJob periodically folds every piece's event log and repairs cached state that
// disagrees with it.
type PieceAuditJob struct {
	handler   PieceAuditor
	schedule  string
	batchSize int
	metrics   *metrics.ProductionMetrics
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPieceAuditJob(
	handler PieceAuditor,
	schedule string,
	batchSize int,
	m *metrics.ProductionMetrics,
	logger *slog.Logger,
) *PieceAuditJob {
	return &PieceAuditJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		metrics:   m,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "piece_audit_job"),
	}
}

func (j *PieceAuditJob) Start() error {
	if _, err := commands.NewRebuildPieceStateCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Piece audit job started", "schedule", j.schedule)
	return nil
}

func (j *PieceAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Piece audit job stopped")
}

func (j *PieceAuditJob) run(ctx context.Context) {
	cmd, err := commands.NewRebuildPieceStateCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Piece audit job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.RecordAudit(result.Checked, len(result.Repaired))
	if err != nil {
		j.logger.ErrorContext(ctx, "Piece audit job failed", "checked", result.Checked, "error", err)
		return
	}

	if len(result.Repaired) > 0 {
		j.logger.WarnContext(ctx, "Piece state repaired from event log",
			"checked", result.Checked, "repaired", result.Repaired)
		return
	}
	j.logger.InfoContext(ctx, "Piece audit finished", "checked", result.Checked)
}
