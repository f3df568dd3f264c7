package usecase

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

// TranscriptRepository - внешнее хранилище транскриптов консультаций
type TranscriptRepository interface {
	Save(ctx context.Context, roomID string, messages []json.RawMessage) (string, error)
}

type FinalizeResult struct {
	Location string
	Count    int
}

type RoomUsecase interface {
	CreateRoom(ctx context.Context) string
	ListRooms(ctx context.Context, openOnly bool) []models.RoomSummary
	DeleteRoom(ctx context.Context, roomID string) bool

	// Finalize чистит очереди кандидатов и сохраняет транскрипт. Комната остается.
	Finalize(ctx context.Context, roomID string, messages []json.RawMessage) (FinalizeResult, error)
}

type roomUsecase struct {
	roomRepo       memory.RoomRepository
	transcriptRepo TranscriptRepository
}

func NewRoomUsecase(roomRepo memory.RoomRepository, transcriptRepo TranscriptRepository) RoomUsecase {
	return &roomUsecase{
		roomRepo:       roomRepo,
		transcriptRepo: transcriptRepo,
	}
}

func (uc *roomUsecase) CreateRoom(ctx context.Context) string {
	for {
		roomID := uuid.NewString()

		if _, created := uc.roomRepo.GetOrCreate(ctx, roomID); created {
			slog.Info("room created", slog.String(constant.RoomID, roomID))
			return roomID
		}
	}
}

func (uc *roomUsecase) ListRooms(ctx context.Context, openOnly bool) []models.RoomSummary {
	rooms := uc.roomRepo.List(ctx)

	summaries := make([]models.RoomSummary, 0, len(rooms))

	for _, room := range rooms {
		if openOnly && !room.IsOpen() {
			continue
		}

		summaries = append(summaries, room.Summary())
	}

	slices.SortFunc(summaries, func(a, b models.RoomSummary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return summaries
}

func (uc *roomUsecase) DeleteRoom(ctx context.Context, roomID string) bool {
	deleted := uc.roomRepo.Delete(ctx, roomID)

	if deleted {
		slog.Info("room deleted", slog.String(constant.RoomID, roomID))
	}

	return deleted
}

func (uc *roomUsecase) Finalize(ctx context.Context, roomID string, messages []json.RawMessage) (FinalizeResult, error) {
	var buffered []json.RawMessage

	// буфер забираем целиком, сообщения пришедшие во время Save останутся в комнате
	uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.ClearCandidates()
		buffered = room.Messages
		room.Messages = nil
	})

	transcript := messages
	if len(transcript) == 0 {
		transcript = buffered
	}

	location, err := uc.transcriptRepo.Save(ctx, roomID, transcript)
	if err != nil {
		if len(buffered) > 0 {
			uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
				room.Messages = append(buffered, room.Messages...)
			})
		}

		return FinalizeResult{}, fmt.Errorf("save transcript: %w", err)
	}

	slog.Info(
		"transcript saved",
		slog.String(constant.RoomID, roomID),
		slog.String(constant.Location, location),
		slog.Int(constant.Count, len(transcript)),
	)

	return FinalizeResult{Location: location, Count: len(transcript)}, nil
}
