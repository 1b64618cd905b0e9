package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"
)

type CreateReplacementResult struct {
	PieceID      kernel.UUID
	Code         string
	EntryStation kernel.UUID
}

// CreateReplacementCommandHandler creates the successor of a broken piece at the first
// station and closes the request.
//
// The broken piece row is locked before anything is read, so of two concurrent calls for one
// piece the second waits, then finds the request resolved and fails with a conflict. The
// replacement index is computed under the same lock.
type CreateReplacementCommandHandler struct {
	uowFactory PieceUoWFactory
}

func NewCreateReplacementCommandHandler(uowFactory PieceUoWFactory) CreateReplacementCommandHandler {
	return CreateReplacementCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateReplacementCommandHandler) Handle(
	ctx context.Context,
	command CreateReplacementCommand,
) (CreateReplacementResult, error) {
	if err := command.Validate(); err != nil {
		return CreateReplacementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateReplacementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieceRepo := uow.PieceRepository()

	original, err := pieceRepo.GetByCodeForUpdate(ctx, command.PieceCode())
	if err != nil {
		return CreateReplacementResult{}, err
	}
	if original.Status() != piece.Broken || !original.NeedsReplacement() {
		return CreateReplacementResult{}, errs.NewConflictError(
			"piece "+original.Code(), "replacement request is already resolved",
		)
	}

	stations, err := uow.StationRepository().GetAll(ctx)
	if err != nil {
		return CreateReplacementResult{}, err
	}
	entry, err := station.NewPipeline(stations).First()
	if err != nil {
		return CreateReplacementResult{}, err
	}

	root := piece.RootCode(original.Code())
	existing, err := pieceRepo.CodesWithRoot(ctx, root)
	if err != nil {
		return CreateReplacementResult{}, err
	}

	now := time.Now().UTC()
	replacement, err := piece.NewReplacement(
		kernel.NewUUID(), original, piece.NextReplacementCode(root, existing), entry.ID(), now,
	)
	if err != nil {
		return CreateReplacementResult{}, err
	}

	if err = original.ResolveWith(replacement, now); err != nil {
		return CreateReplacementResult{}, err
	}

	if err = pieceRepo.Add(ctx, replacement); err != nil {
		return CreateReplacementResult{}, err
	}
	if err = pieceRepo.Update(ctx, original); err != nil {
		return CreateReplacementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateReplacementResult{}, err
	}

	return CreateReplacementResult{
		PieceID:      replacement.ID(),
		Code:         replacement.Code(),
		EntryStation: entry.ID(),
	}, nil
}
