package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/guest/model"
)

// ErrDuplicateNationalID is returned by stores that enforce the unique
// national id themselves rather than through a database constraint.
var ErrDuplicateNationalID = errors.New("national id already registered")

type Guest interface {
	Create(ctx context.Context, guest model.Guest) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (model.Guest, bool, error)
	GetByNationalID(ctx context.Context, nationalID string) (model.Guest, bool, error)
	List(ctx context.Context) ([]model.Guest, error)
}

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Guest {
	if cfg.UsePostgres() {
		return NewPostgres(db, otel)
	}

	return NewMemory()
}
