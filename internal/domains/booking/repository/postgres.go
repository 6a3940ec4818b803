package repository

import (
	"context"
	"fmt"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gRepo "frontdesk/shared/repository"

	"github.com/google/uuid"
)

// insertion order is kept by the seq column the database assigns
var byInsertion = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldSeq, SortDir: gDto.SortDirAsc}

type postgresRepository struct {
	gRepo.Repository[model.Booking]
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Booking {
	return &postgresRepository{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *postgresRepository) Create(ctx context.Context, booking model.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	if err := r.Insert(ctx, booking); err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	return booking.ID, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, patch model.Patch) (bool, error) {
	affected, err := r.Repository.Update(ctx, patch.Columns(), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to update booking: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (model.Booking, bool, error) {
	booking, found, err := r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, found, nil
}

func (r *postgresRepository) ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	return r.listBy(ctx, model.FieldRoomID, roomID)
}

func (r *postgresRepository) ListByGuest(ctx context.Context, guestID string) ([]model.Booking, error) {
	return r.listBy(ctx, model.FieldGuestID, guestID)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	bookings, err := r.GetAll(ctx, byInsertion, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (r *postgresRepository) listBy(ctx context.Context, field, value string) ([]model.Booking, error) {
	bookings, err := r.GetAll(ctx, byInsertion, shared.FilterByID(value, field, model.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by %s: %w", field, err)
	}

	return bookings, nil
}
