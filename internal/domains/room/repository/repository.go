package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/room/model"
)

// Room is the room inventory. List returns rooms sorted by floor then room
// number; an empty category lists every room.
type Room interface {
	Create(ctx context.Context, room model.Room) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (model.Room, bool, error)
	GetByNumber(ctx context.Context, roomNumber string) (model.Room, bool, error)
	List(ctx context.Context, category model.Category) ([]model.Room, error)
}

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Room {
	if cfg.UsePostgres() {
		return NewPostgres(db, otel)
	}

	return NewMemory()
}
