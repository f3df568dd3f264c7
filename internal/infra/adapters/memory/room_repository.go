package memory

import (
	"context"
	"sync"
	"time"

	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/models"
)

// RoomRepository - реестр комнат процесса. Комната создается при первом обращении,
// удаляется только через Delete/DeleteIf.
type RoomRepository interface {
	// GetOrCreate возвращает снимок комнаты и признак того, что она только что создана
	GetOrCreate(ctx context.Context, roomID string) (models.Room, bool)

	// Update атомарно применяет fn к комнате, создавая ее при необходимости
	Update(ctx context.Context, roomID string, fn func(room *models.Room)) bool

	Delete(ctx context.Context, roomID string) bool

	// DeleteIf атомарно удаляет все комнаты, для которых pred вернул true
	DeleteIf(ctx context.Context, pred func(room *models.Room) bool) []string

	// List возвращает снимки всех комнат
	List(ctx context.Context) []models.Room
}

type roomRepository struct {
	// rooms хранит map[room_id]*Room
	rooms map[string]*models.Room
	mu    sync.Mutex

	now func() time.Time
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*models.Room),
		now:   time.Now,
	}
}

func (r *roomRepository) GetOrCreate(ctx context.Context, roomID string) (models.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, created := r.getOrCreate(roomID)

	return room.Clone(), created
}

func (r *roomRepository) Update(ctx context.Context, roomID string, fn func(room *models.Room)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, created := r.getOrCreate(roomID)
	fn(room)

	return created
}

func (r *roomRepository) Delete(ctx context.Context, roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[roomID]; !exists {
		return false
	}

	delete(r.rooms, roomID)
	metric.SetRoomsActive(len(r.rooms))

	return true
}

func (r *roomRepository) DeleteIf(ctx context.Context, pred func(room *models.Room) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []string

	for id, room := range r.rooms {
		if pred(room) {
			delete(r.rooms, id)
			deleted = append(deleted, id)
		}
	}

	if len(deleted) > 0 {
		metric.SetRoomsActive(len(r.rooms))
	}

	return deleted
}

func (r *roomRepository) List(ctx context.Context) []models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms := make([]models.Room, 0, len(r.rooms))

	for _, room := range r.rooms {
		rooms = append(rooms, room.Clone())
	}

	return rooms
}

// getOrCreate вызывается под r.mu
func (r *roomRepository) getOrCreate(roomID string) (*models.Room, bool) {
	if room, exists := r.rooms[roomID]; exists {
		return room, false
	}

	room := models.NewRoom(roomID, r.now())
	r.rooms[roomID] = room
	metric.SetRoomsActive(len(r.rooms))

	return room, true
}
