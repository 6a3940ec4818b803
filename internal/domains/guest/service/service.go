package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/guest/model"
	"frontdesk/internal/domains/guest/model/dto"
	"frontdesk/internal/domains/guest/repository"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Guest is the guest directory. Editing a guest never touches the snapshot
// stored in existing bookings.
type Guest interface {
	// FindOrCreate resolves a guest by national id, refreshing the phone
	// number when it changed, and creates one when none exists.
	FindOrCreate(ctx context.Context, name, nationalID, phone string) (string, error)
	Lookup(ctx context.Context, nationalID string) (dto.GuestResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	List(ctx context.Context, search string, params gDto.QueryParams) (dto.GetGuestsResponse, error)
	Create(ctx context.Context, req dto.CreateGuestRequest) (string, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Guest
	otel otel.Otel
}

func New(repo repository.Guest, otel otel.Otel) Guest {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) FindOrCreate(ctx context.Context, name, nationalID, phone string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.FindOrCreate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	nationalID = strings.TrimSpace(nationalID)
	phone = strings.TrimSpace(phone)

	guest, found, err := s.repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up guest")

		return constant.Empty, fmt.Errorf("failed to look up guest: %w", err)
	}

	if found {
		if phone != constant.Empty && phone != guest.Phone {
			if _, err = s.repo.Update(ctx, guest.ID, map[string]any{model.FieldPhone: phone}); err != nil {
				log.Error().Err(err).Str("guest_id", guest.ID).Msg("failed to refresh guest phone")

				return constant.Empty, fmt.Errorf("failed to refresh guest phone: %w", err)
			}

			log.Info().Str("guest_id", guest.ID).Msg("guest phone refreshed")
		}

		return guest.ID, nil
	}

	id, err = s.repo.Create(ctx, model.Guest{Name: strings.TrimSpace(name), NationalID: nationalID, Phone: phone})
	if isUniqueViolation(err) {
		// created concurrently by another booking
		guest, found, lookupErr := s.repo.GetByNationalID(ctx, nationalID)
		if lookupErr == nil && found {
			return guest.ID, nil
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return constant.Empty, fmt.Errorf("failed to create guest: %w", err)
	}

	log.Info().Str("guest_id", id).Msg("guest created")

	return id, nil
}

func (s *serviceImpl) Lookup(ctx context.Context, nationalID string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(nationalID) == constant.Empty {
		return res, failure.BadRequestFromString("national_id is required") // nolint:wrapcheck
	}

	guest, found, err := s.repo.GetByNationalID(ctx, strings.TrimSpace(nationalID))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up guest")

		return res, fmt.Errorf("failed to look up guest: %w", err)
	}

	if !found {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if !found {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, search string, params gDto.QueryParams) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guests, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list guests")

		return res, fmt.Errorf("failed to list guests: %w", err)
	}

	if search = strings.TrimSpace(search); search != constant.Empty {
		matched := []model.Guest{}

		for _, guest := range guests {
			if guest.Matches(search) {
				matched = append(matched, guest)
			}
		}

		guests = matched
	}

	res.FromModels(shared.Paginate(guests, params), len(guests), params.Limit)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest := req.ToModel()

	if err = s.ensureUniqueNationalID(ctx, guest.NationalID, constant.Empty); err != nil {
		return constant.Empty, err
	}

	id, err = s.repo.Create(ctx, guest)
	if isUniqueViolation(err) {
		return constant.Empty, failure.Conflict("national id already registered") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return constant.Empty, fmt.Errorf("failed to create guest: %w", err)
	}

	return id, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.NationalID != nil {
		trimmed := strings.TrimSpace(*req.NationalID)
		req.NationalID = &trimmed

		if err = s.ensureUniqueNationalID(ctx, trimmed, id); err != nil {
			return err
		}
	}

	updated, err := s.repo.Update(ctx, id, shared.TransformFields(req))
	if isUniqueViolation(err) {
		return failure.Conflict("national id already registered") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return fmt.Errorf("failed to update guest: %w", err)
	}

	if !updated {
		return failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	if !deleted {
		return failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureUniqueNationalID(ctx context.Context, nationalID, selfID string) error {
	existing, found, err := s.repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check national id")

		return fmt.Errorf("failed to check national id: %w", err)
	}

	if found && existing.ID != selfID {
		return failure.Conflict("national id already registered") // nolint:wrapcheck
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, repository.ErrDuplicateNationalID) {
		return true
	}

	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
