package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

// CandidateUsecase - почтовый ящик ICE кандидатов. Очередь стороны очищается при чтении,
// поэтому пропущенное чтение теряет кандидатов.
type CandidateUsecase interface {
	PostCandidate(ctx context.Context, roomID, from string, candidate json.RawMessage) error
	DrainCandidates(ctx context.Context, roomID, forParty string) ([]json.RawMessage, error)
}

type candidateUsecase struct {
	roomRepo memory.RoomRepository
}

func NewCandidateUsecase(roomRepo memory.RoomRepository) CandidateUsecase {
	return &candidateUsecase{roomRepo: roomRepo}
}

func (uc *candidateUsecase) PostCandidate(ctx context.Context, roomID, from string, candidate json.RawMessage) error {
	party, ok := models.ParseParty(from)
	if !ok || isAbsent(candidate) {
		return ErrInvalidPayload
	}

	stored := bytes.Clone(candidate)

	uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.Candidates[party] = append(room.Candidates[party], stored)
	})

	metric.AddCandidatesPosted(party.String(), 1)

	return nil
}

func (uc *candidateUsecase) DrainCandidates(ctx context.Context, roomID, forParty string) ([]json.RawMessage, error) {
	party, ok := models.ParseParty(forParty)
	if !ok {
		return nil, ErrInvalidRole
	}

	var drained []json.RawMessage

	uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		drained = room.DrainCandidates(party)
	})

	if drained == nil {
		drained = []json.RawMessage{}
	}

	if len(drained) > 0 {
		metric.AddCandidatesDrained(party.String(), len(drained))
		slog.Debug(
			"candidates drained",
			slog.String(constant.RoomID, roomID),
			slog.String(constant.Party, party.String()),
			slog.Int(constant.Count, len(drained)),
		)
	}

	return drained, nil
}
