package repository

import (
	"context"
	"sync"

	"frontdesk/internal/domains/room/model"
	"frontdesk/shared"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	rooms map[string]model.Room
}

func NewMemory() Room {
	return &memoryRepository{
		rooms: map[string]model.Room{},
	}
}

func (r *memoryRepository) Create(_ context.Context, room model.Room) (string, error) {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.ID] = room.Clone()

	return room.ID, nil
}

func (r *memoryRepository) Update(_ context.Context, id string, fields map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return false, nil
	}

	shared.ApplyFields(&room, fields)
	r.rooms[id] = room.Clone()

	return true, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return false, nil
	}

	delete(r.rooms, id)

	return true, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (model.Room, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return model.Room{}, false, nil
	}

	return room.Clone(), true, nil
}

func (r *memoryRepository) GetByNumber(_ context.Context, roomNumber string) (model.Room, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.RoomNumber == roomNumber {
			return room.Clone(), true, nil
		}
	}

	return model.Room{}, false, nil
}

func (r *memoryRepository) List(_ context.Context, category model.Category) ([]model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := []model.Room{}

	for _, room := range r.rooms {
		if category == "" || room.Category == category {
			rooms = append(rooms, room.Clone())
		}
	}

	model.Sort(rooms)

	return rooms, nil
}
