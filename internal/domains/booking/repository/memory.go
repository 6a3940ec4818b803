package repository

import (
	"context"
	"sync"

	"frontdesk/internal/domains/booking/model"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]model.Booking
	order    []string
	seq      int64
}

// NewMemory returns a process local store. Every read hands out copies.
func NewMemory() Booking {
	return &memoryRepository{
		bookings: map[string]model.Booking{},
	}
}

func (r *memoryRepository) Create(_ context.Context, booking model.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		r.order = append(r.order, booking.ID)
	}

	r.seq++
	booking.Seq = r.seq
	r.bookings[booking.ID] = booking.Clone()

	return booking.ID, nil
}

func (r *memoryRepository) Update(_ context.Context, id string, patch model.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return false, nil
	}

	patch.Apply(&booking)
	r.bookings[id] = booking

	return true, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}

	delete(r.bookings, id)

	for i, bookingID := range r.order {
		if bookingID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return true, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (model.Booking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return model.Booking{}, false, nil
	}

	return booking.Clone(), true, nil
}

func (r *memoryRepository) ListByRoom(_ context.Context, roomID string) ([]model.Booking, error) {
	return r.list(func(b model.Booking) bool { return b.RoomID == roomID }), nil
}

func (r *memoryRepository) ListByGuest(_ context.Context, guestID string) ([]model.Booking, error) {
	return r.list(func(b model.Booking) bool { return b.GuestID == guestID }), nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]model.Booking, error) {
	return r.list(func(model.Booking) bool { return true }), nil
}

func (r *memoryRepository) list(match func(model.Booking) bool) []model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := []model.Booking{}

	for _, id := range r.order {
		if booking := r.bookings[id]; match(booking) {
			res = append(res, booking.Clone())
		}
	}

	return res
}
