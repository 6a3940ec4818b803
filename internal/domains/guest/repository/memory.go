package repository

import (
	"context"
	"sync"

	"frontdesk/internal/domains/guest/model"
	"frontdesk/shared"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	guests map[string]model.Guest
}

func NewMemory() Guest {
	return &memoryRepository{
		guests: map[string]model.Guest{},
	}
}

func (r *memoryRepository) Create(_ context.Context, guest model.Guest) (string, error) {
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(guest.NationalID, guest.ID) {
		return "", ErrDuplicateNationalID
	}

	r.guests[guest.ID] = guest

	return guest.ID, nil
}

// taken reports whether a guest other than selfID holds nationalID. Callers
// hold mu.
func (r *memoryRepository) taken(nationalID, selfID string) bool {
	for id, guest := range r.guests {
		if id != selfID && guest.NationalID == nationalID {
			return true
		}
	}

	return false
}

func (r *memoryRepository) Update(_ context.Context, id string, fields map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	guest, ok := r.guests[id]
	if !ok {
		return false, nil
	}

	if nationalID, ok := fields[model.FieldNationalID].(string); ok && r.taken(nationalID, id) {
		return false, ErrDuplicateNationalID
	}

	shared.ApplyFields(&guest, fields)
	r.guests[id] = guest

	return true, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.guests[id]; !ok {
		return false, nil
	}

	delete(r.guests, id)

	return true, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (model.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guest, ok := r.guests[id]

	return guest, ok, nil
}

func (r *memoryRepository) GetByNationalID(_ context.Context, nationalID string) (model.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, guest := range r.guests {
		if guest.NationalID == nationalID {
			return guest, true, nil
		}
	}

	return model.Guest{}, false, nil
}

func (r *memoryRepository) List(_ context.Context) ([]model.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guests := make([]model.Guest, 0, len(r.guests))
	for _, guest := range r.guests {
		guests = append(guests, guest)
	}

	model.Sort(guests)

	return guests, nil
}
