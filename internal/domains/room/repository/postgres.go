package repository

import (
	"context"
	"fmt"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/room/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gRepo "frontdesk/shared/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepository struct {
	gRepo.Repository[model.Room]
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Room {
	return &postgresRepository{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *postgresRepository) Create(ctx context.Context, room model.Room) (string, error) {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}

	if room.Problems == nil {
		room.Problems = pq.StringArray{}
	}

	if err := r.Insert(ctx, room); err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	return room.ID, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	// lib/pq only encodes arrays through its own wrapper types
	if problems, ok := fields[model.FieldProblems].([]string); ok {
		fields[model.FieldProblems] = pq.StringArray(problems)
	}

	affected, err := r.Repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to update room: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (model.Room, bool, error) {
	return r.getBy(ctx, model.FieldID, id)
}

func (r *postgresRepository) GetByNumber(ctx context.Context, roomNumber string) (model.Room, bool, error) {
	return r.getBy(ctx, model.FieldRoomNumber, roomNumber)
}

func (r *postgresRepository) List(ctx context.Context, category model.Category) ([]model.Room, error) {
	filter := gDto.FilterGroup{}
	if category != "" {
		filter = shared.FilterByID(string(category), model.FieldCategory, model.TableName)
	}

	rooms, err := r.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	model.Sort(rooms)

	return rooms, nil
}

func (r *postgresRepository) getBy(ctx context.Context, field, value string) (model.Room, bool, error) {
	room, found, err := r.Get(ctx, shared.FilterByID(value, field, model.TableName))
	if err != nil {
		return model.Room{}, false, fmt.Errorf("failed to get room by %s: %w", field, err)
	}

	return room, found, nil
}
