package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/booking/model"
)

// Booking stores bookings. Errors are infrastructure failures only; a missing
// booking is reported through the boolean results. Lists are snapshots in
// insertion order.
type Booking interface {
	Create(ctx context.Context, booking model.Booking) (string, error)
	Update(ctx context.Context, id string, patch model.Patch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (model.Booking, bool, error)
	ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	ListByGuest(ctx context.Context, guestID string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
}

// New picks the backend configured by STORE_DRIVER.
func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Booking {
	if cfg.UsePostgres() {
		return NewPostgres(db, otel)
	}

	return NewMemory()
}
