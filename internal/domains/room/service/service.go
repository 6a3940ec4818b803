package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/availability"
	"frontdesk/internal/domains/room/model"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/shared/daterange"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom  = "room:get"
	cacheListRoom = "room:list"
)

// Room manages the inventory. Reads of the inventory itself are cached;
// anything derived from bookings is always computed fresh.
type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (string, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	List(ctx context.Context, category string, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, id string, start, end daterange.Date, excludeBookingID string) (dto.AvailabilityResponse, error)
	Overview(ctx context.Context, start, end daterange.Date) (dto.OverviewResponse, error)
	AvailableIDs(ctx context.Context, start, end daterange.Date) (dto.RoomIDsResponse, error)
	OccupiedIDs(ctx context.Context) (dto.RoomIDsResponse, error)
	BookedIDs(ctx context.Context, date daterange.Date) (dto.RoomIDsResponse, error)
}

type serviceImpl struct {
	repo         repository.Room
	availability availability.Engine
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Room, availability availability.Engine, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return constant.Empty, err // nolint:wrapcheck
	}

	room := req.ToModel()

	if err = s.ensureNumberFree(ctx, room.RoomNumber, constant.Empty); err != nil {
		return constant.Empty, err
	}

	id, err = s.repo.Create(ctx, room)
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return constant.Empty, fmt.Errorf("failed to create room: %w", err)
	}

	log.Info().Str("room_id", id).Str("room_number", room.RoomNumber).Msg("room created")

	s.invalidate(ctx, constant.Empty)

	return id, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// List returns rooms ordered by floor then room number, optionally limited to
// one category.
func (s *serviceImpl) List(ctx context.Context, category string, params gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if category != constant.Empty && !model.Category(category).Valid() {
		return res, failure.BadRequestFromString("category must be one of Double, Couple, Connecting") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheListRoom, category, strconv.Itoa(params.Page), strconv.Itoa(params.Limit))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	rooms, err := s.repo.List(ctx, model.Category(category))
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return res, fmt.Errorf("failed to list rooms: %w", err)
	}

	res.FromModels(shared.Paginate(rooms, params), len(rooms), params.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err // nolint:wrapcheck
	}

	if _, err = s.load(ctx, id); err != nil {
		return err
	}

	if req.RoomNumber != nil {
		if err = s.ensureNumberFree(ctx, *req.RoomNumber, id); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(req)
	if len(fields) == 0 {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	if !updated {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	log.Info().Str("room_id", id).Int("fields", len(fields)).Msg("room updated")

	s.invalidate(ctx, id)

	return nil
}

// Delete removes a room that has neither a guest in it nor a stay ahead.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.load(ctx, id); err != nil {
		return err
	}

	ok, reason, err := s.availability.DeleteEligible(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check room bookings: %w", err)
	}

	if !ok {
		return failure.Conflict("room cannot be deleted: " + reason) // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if !deleted {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	log.Info().Str("room_id", id).Msg("room deleted")

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Availability(ctx context.Context, id string, start, end daterange.Date, excludeBookingID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.load(ctx, id); err != nil {
		return res, err
	}

	res.Available, err = s.availability.IsAvailable(ctx, id, start, end, excludeBookingID)
	if err != nil {
		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	return res, nil
}

// Overview splits the inventory into rooms that can be handed out for
// [start, end) right now and the rest. Zero dates default to tonight.
func (s *serviceImpl) Overview(ctx context.Context, start, end daterange.Date) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Overview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if start.IsZero() {
		start = s.availability.Today()
	}

	if end.IsZero() {
		end = start.AddDays(1)
	}

	rooms, err := s.repo.List(ctx, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return res, fmt.Errorf("failed to list rooms: %w", err)
	}

	available, err := s.availability.AvailableRoomIDs(ctx, start, end)
	if err != nil {
		return res, fmt.Errorf("failed to compute available rooms: %w", err)
	}

	occupied, err := s.availability.OccupiedRoomIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to compute occupied rooms: %w", err)
	}

	res.Start = start.String()
	res.End = end.String()
	res.Available = []dto.RoomResponse{}
	res.OccupiedOrBooked = []dto.RoomResponse{}

	for _, room := range rooms {
		var r dto.RoomResponse
		r.FromModel(room)

		if slices.Contains(available, room.ID) && !slices.Contains(occupied, room.ID) {
			res.Available = append(res.Available, r)
		} else {
			res.OccupiedOrBooked = append(res.OccupiedOrBooked, r)
		}
	}

	return res, nil
}

func (s *serviceImpl) AvailableIDs(ctx context.Context, start, end daterange.Date) (res dto.RoomIDsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.AvailableIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.availability.AvailableRoomIDs(ctx, start, end)
	if err != nil {
		return res, fmt.Errorf("failed to compute available rooms: %w", err)
	}

	res.RoomIDs = nonNil(ids)

	return res, nil
}

func (s *serviceImpl) OccupiedIDs(ctx context.Context) (res dto.RoomIDsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.OccupiedIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.availability.OccupiedRoomIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to compute occupied rooms: %w", err)
	}

	res.RoomIDs = nonNil(ids)

	return res, nil
}

func (s *serviceImpl) BookedIDs(ctx context.Context, date daterange.Date) (res dto.RoomIDsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.BookedIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.availability.BookedRoomIDs(ctx, date)
	if err != nil {
		return res, fmt.Errorf("failed to compute booked rooms: %w", err)
	}

	res.RoomIDs = nonNil(ids)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Room, error) {
	room, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return model.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return model.Room{}, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) ensureNumberFree(ctx context.Context, number, selfID string) error {
	existing, found, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up room number")

		return fmt.Errorf("failed to look up room number: %w", err)
	}

	if found && existing.ID != selfID {
		return failure.Conflict(fmt.Sprintf("room number %s already exists", number)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save room cache")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if id != constant.Empty {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, cacheListRoom)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
