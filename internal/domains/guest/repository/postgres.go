package repository

import (
	"context"
	"fmt"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/guest/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gRepo "frontdesk/shared/repository"

	"github.com/google/uuid"
)

type postgresRepository struct {
	gRepo.Repository[model.Guest]
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Guest {
	return &postgresRepository{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *postgresRepository) Create(ctx context.Context, guest model.Guest) (string, error) {
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}

	if err := r.Insert(ctx, guest); err != nil {
		return "", fmt.Errorf("failed to create guest: %w", err)
	}

	return guest.ID, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	affected, err := r.Repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to update guest: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to delete guest: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (model.Guest, bool, error) {
	return r.getBy(ctx, model.FieldID, id)
}

func (r *postgresRepository) GetByNationalID(ctx context.Context, nationalID string) (model.Guest, bool, error) {
	return r.getBy(ctx, model.FieldNationalID, nationalID)
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Guest, error) {
	guests, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.TableName + "." + model.FieldName}, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	model.Sort(guests)

	return guests, nil
}

func (r *postgresRepository) getBy(ctx context.Context, field, value string) (model.Guest, bool, error) {
	guest, found, err := r.Get(ctx, shared.FilterByID(value, field, model.TableName))
	if err != nil {
		return model.Guest{}, false, fmt.Errorf("failed to get guest by %s: %w", field, err)
	}

	return guest, found, nil
}
