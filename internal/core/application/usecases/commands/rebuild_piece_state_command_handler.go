package commands

import (
	"context"

	"production/internal/core/domain/model/kernel"
)

type RebuildPieceStateResult struct {
	Checked  int
	Repaired []string
}

// RebuildPieceStateCommandHandler is the audit of the piece state cache against the log.
type RebuildPieceStateCommandHandler struct {
	uowFactory PieceUoWFactory
}

func NewRebuildPieceStateCommandHandler(uowFactory PieceUoWFactory) RebuildPieceStateCommandHandler {
	return RebuildPieceStateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle walks all pieces. Repaired lists the codes of pieces whose cache was rewritten.
func (h RebuildPieceStateCommandHandler) Handle(
	ctx context.Context,
	command RebuildPieceStateCommand,
) (RebuildPieceStateResult, error) {
	var result RebuildPieceStateResult

	if err := command.Validate(); err != nil {
		return result, err
	}

	var after *kernel.UUID
	for {
		checked, last, repaired, err := h.batch(ctx, after, command.BatchSize())
		if err != nil {
			return result, err
		}

		result.Checked += checked
		result.Repaired = append(result.Repaired, repaired...)

		if checked < command.BatchSize() {
			return result, nil
		}
		after = last
	}
}

func (h RebuildPieceStateCommandHandler) batch(
	ctx context.Context,
	after *kernel.UUID,
	limit int,
) (int, *kernel.UUID, []string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PieceRepository()

	page, err := repo.Page(ctx, after, limit)
	if err != nil {
		return 0, nil, nil, err
	}
	if len(page) == 0 {
		return 0, after, nil, nil
	}

	var repaired []string
	for _, candidate := range page {
		log, err := repo.Events(ctx, candidate.ID())
		if err != nil {
			return 0, nil, nil, err
		}
		if !candidate.Reconcile(log) {
			continue
		}

		// Drift seen without a lock: re-check under one before writing.
		p, err := repo.GetForUpdate(ctx, candidate.ID())
		if err != nil {
			return 0, nil, nil, err
		}
		if log, err = repo.Events(ctx, p.ID()); err != nil {
			return 0, nil, nil, err
		}
		if !p.Reconcile(log) {
			continue
		}

		if err = repo.Update(ctx, p); err != nil {
			return 0, nil, nil, err
		}
		repaired = append(repaired, p.Code())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, nil, nil, err
	}

	last := page[len(page)-1].ID()
	return len(page), &last, repaired, nil
}
