package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

type LivenessUsecase interface {
	// Heartbeat обновляет last_heartbeat и дописывает переданные сообщения в буфер
	Heartbeat(ctx context.Context, roomID string, messages []json.RawMessage)

	// Reset сбрасывает согласование. created=true, если комнаты не было.
	Reset(ctx context.Context, roomID string) (created bool)

	// Reap удаляет комнаты без heartbeat дольше ttl
	Reap(ctx context.Context, ttl time.Duration) []string

	RunReaper(ctx context.Context, interval, ttl time.Duration)
}

type livenessUsecase struct {
	roomRepo memory.RoomRepository

	now func() time.Time
}

func NewLivenessUsecase(roomRepo memory.RoomRepository) LivenessUsecase {
	return &livenessUsecase{
		roomRepo: roomRepo,
		now:      time.Now,
	}
}

func (uc *livenessUsecase) Heartbeat(ctx context.Context, roomID string, messages []json.RawMessage) {
	now := uc.now()

	uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.LastHeartbeat = now

		for _, msg := range messages {
			if isAbsent(msg) {
				continue
			}

			room.Messages = append(room.Messages, msg)
		}
	})
}

func (uc *livenessUsecase) Reset(ctx context.Context, roomID string) bool {
	now := uc.now()

	created := uc.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.ResetNegotiation()
		room.LastHeartbeat = now
	})

	slog.Info(
		"negotiation reset",
		slog.String(constant.RoomID, roomID),
		slog.Bool(constant.Created, created),
	)

	return created
}

func (uc *livenessUsecase) Reap(ctx context.Context, ttl time.Duration) []string {
	if ttl <= 0 {
		return nil
	}

	staleFrom := uc.now().Add(-ttl)

	reaped := uc.roomRepo.DeleteIf(ctx, func(room *models.Room) bool {
		return room.LastHeartbeat.Before(staleFrom)
	})

	if len(reaped) > 0 {
		metric.AddRoomsReaped(len(reaped))
		slog.Info(
			"stale rooms reaped",
			slog.Any(constant.Reaped, reaped),
			slog.Time(constant.StaleFrom, staleFrom),
		)
	}

	return reaped
}

func (uc *livenessUsecase) RunReaper(ctx context.Context, interval, ttl time.Duration) {
	if ttl <= 0 || interval <= 0 {
		slog.Info("room reaper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.Reap(ctx, ttl)
		}
	}
}
