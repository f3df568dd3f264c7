package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrave1/RoomSignal/internal/domain/models"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	first, created := repo.GetOrCreate(ctx, "room-1")
	require.True(t, created)

	second, created := repo.GetOrCreate(ctx, "room-1")
	require.False(t, created)

	assert.Equal(t, "room-1", second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.LastHeartbeat)
}

func TestGetOrCreateReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	repo.Update(ctx, "room-1", func(room *models.Room) {
		room.Candidates[models.PartyCaller] = []json.RawMessage{json.RawMessage(`1`)}
	})

	snapshot, _ := repo.GetOrCreate(ctx, "room-1")
	snapshot.Candidates[models.PartyCaller] = nil
	snapshot.Offer = json.RawMessage(`"mutated"`)

	again, _ := repo.GetOrCreate(ctx, "room-1")
	assert.Len(t, again.Candidates[models.PartyCaller], 1)
	assert.False(t, again.HasOffer())
}

func TestUpdateCreatesRoom(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	created := repo.Update(ctx, "room-1", func(room *models.Room) {
		room.ConnectionConfirmed = true
	})
	assert.True(t, created)

	created = repo.Update(ctx, "room-1", func(room *models.Room) {})
	assert.False(t, created)

	room, _ := repo.GetOrCreate(ctx, "room-1")
	assert.True(t, room.ConnectionConfirmed)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	assert.False(t, repo.Delete(ctx, "missing"))

	repo.GetOrCreate(ctx, "room-1")
	assert.True(t, repo.Delete(ctx, "room-1"))
	assert.False(t, repo.Delete(ctx, "room-1"))
	assert.Empty(t, repo.List(ctx))
}

func TestDeleteIf(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	repo.GetOrCreate(ctx, "keep")
	repo.Update(ctx, "drop", func(room *models.Room) {
		room.LastHeartbeat = time.Unix(0, 0)
	})

	deleted := repo.DeleteIf(ctx, func(room *models.Room) bool {
		return room.LastHeartbeat.Before(time.Unix(1, 0))
	})

	assert.Equal(t, []string{"drop"}, deleted)

	rooms := repo.List(ctx)
	require.Len(t, rooms, 1)
	assert.Equal(t, "keep", rooms[0].ID)
}

func TestConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Update(ctx, "room-1", func(room *models.Room) {
				room.Candidates[models.PartyCaller] = append(
					room.Candidates[models.PartyCaller],
					json.RawMessage(fmt.Sprintf("%d", i)),
				)
			})
		}()
	}
	wg.Wait()

	room, _ := repo.GetOrCreate(ctx, "room-1")
	assert.Len(t, room.Candidates[models.PartyCaller], workers)
}
