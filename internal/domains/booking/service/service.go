package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/availability"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	guestService "frontdesk/internal/domains/guest/service"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/lock"
	"frontdesk/shared/timezone"
	"frontdesk/shared/validator"

	"github.com/rs/zerolog/log"
)

const lockKeyRoom = "room"

// Booking drives the booking lifecycle, pending -> active -> completed.
// Commands on one room run one at a time.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) error
	Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ListForRoom(ctx context.Context, roomID, scope string) ([]dto.BookingResponse, error)
	ListForGuest(ctx context.Context, guestID, scope string) ([]dto.BookingResponse, error)
	List(ctx context.Context, search string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	guests       guestService.Guest
	availability availability.Engine
	locker       lock.Locker
	events       kafka.Client
	cfg          *config.Config
	otel         otel.Otel
	clock        timezone.Clock
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guests guestService.Guest,
	availability availability.Engine,
	locker lock.Locker,
	events kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		guests:       guests,
		availability: availability,
		locker:       locker,
		events:       events,
		cfg:          cfg,
		otel:         otel,
		clock:        clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return constant.Empty, err // nolint:wrapcheck
	}

	room, found, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return constant.Empty, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return constant.Empty, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if limit := room.Category.MaxGuests(); req.NumberOfPeople > limit {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("a %s room holds at most %d guests", room.Category, limit)) // nolint:wrapcheck
	}

	if req.PaidAmount > req.TotalAmount {
		return constant.Empty, failure.BadRequestFromString("paid amount cannot exceed total amount") // nolint:wrapcheck
	}

	unlock, err := s.lockRoom(ctx, room.ID)
	if err != nil {
		return constant.Empty, err
	}
	defer unlock()

	booking := req.ToModel(constant.Empty)

	available, err := s.availability.IsAvailable(ctx, room.ID, booking.BookingDate, booking.EndDate(), constant.Empty)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to check availability: %w", err)
	}

	if !available {
		return constant.Empty, failure.Conflict("room is not available for the requested dates") // nolint:wrapcheck
	}

	booking.GuestID, err = s.guests.FindOrCreate(ctx, booking.GuestName, booking.NationalID, booking.Phone)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to resolve guest: %w", err)
	}

	booking.ID, err = s.repo.Create(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return constant.Empty, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("room_id", room.ID).Str("booking_date", booking.BookingDate.String()).
		Int("duration_days", booking.DurationDays).Msg("booking created")

	s.publish(ctx, model.EventCreated, booking)

	return booking.ID, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, unlock, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if booking.IsCheckedOut() {
		return failure.Conflict("booking already checked out") // nolint:wrapcheck
	}

	if booking.IsCheckedIn() {
		return failure.Conflict("booking already checked in") // nolint:wrapcheck
	}

	roomBookings, err := s.repo.ListByRoom(ctx, booking.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings for room")

		return fmt.Errorf("failed to list bookings for room: %w", err)
	}

	for _, other := range roomBookings {
		if other.ID != booking.ID && other.Status() == model.StatusActive {
			return failure.Conflict("another guest is checked in to this room") // nolint:wrapcheck
		}
	}

	now := s.now()

	if err = s.update(ctx, id, model.Patch{CheckInAt: &now}); err != nil {
		return err
	}

	booking.CheckInAt = &now

	log.Info().Str("booking_id", id).Str("room_id", booking.RoomID).Msg("guest checked in")

	s.publish(ctx, model.EventCheckedIn, booking)

	return nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, unlock, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if !booking.IsCheckedIn() {
		return failure.Conflict("booking is not checked in") // nolint:wrapcheck
	}

	if booking.IsCheckedOut() {
		return failure.Conflict("booking already checked out") // nolint:wrapcheck
	}

	now := s.now()

	if err = s.update(ctx, id, model.Patch{CheckOutAt: &now}); err != nil {
		return err
	}

	booking.CheckOutAt = &now

	log.Info().Str("booking_id", id).Str("room_id", booking.RoomID).Int64("outstanding", booking.Outstanding()).Msg("guest checked out")

	s.publish(ctx, model.EventCheckedOut, booking)

	return nil
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.UpdatePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err // nolint:wrapcheck
	}

	booking, unlock, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if booking.IsCheckedOut() {
		return failure.Conflict("booking already checked out") // nolint:wrapcheck
	}

	if req.PaidAmount < booking.PaidAmount {
		return failure.BadRequestFromString("paid amount cannot decrease") // nolint:wrapcheck
	}

	if req.PaidAmount > booking.TotalAmount {
		return failure.BadRequestFromString("paid amount cannot exceed total amount") // nolint:wrapcheck
	}

	if err = s.update(ctx, id, model.Patch{PaidAmount: &req.PaidAmount}); err != nil {
		return err
	}

	booking.PaidAmount = req.PaidAmount

	log.Info().Str("booking_id", id).Int64("paid_amount", req.PaidAmount).Msg("payment updated")

	s.publish(ctx, model.EventPaymentUpdated, booking)

	return nil
}

func (s *serviceImpl) Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Extend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err // nolint:wrapcheck
	}

	booking, unlock, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if booking.IsCheckedOut() {
		return failure.Conflict("booking already checked out") // nolint:wrapcheck
	}

	if req.ExtraDays > model.MaxStayDays-booking.DurationDays {
		return failure.BadRequestFromString(fmt.Sprintf("a stay cannot exceed %d nights", model.MaxStayDays)) // nolint:wrapcheck
	}

	if req.ExtraAmount > model.MaxAmount-booking.TotalAmount {
		return failure.BadRequestFromString(fmt.Sprintf("total amount cannot exceed %d", model.MaxAmount)) // nolint:wrapcheck
	}

	oldEnd := booking.EndDate()

	available, err := s.availability.IsAvailable(ctx, booking.RoomID, oldEnd, oldEnd.AddDays(req.ExtraDays), booking.ID)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}

	if !available {
		return failure.Conflict("room is not available for the extra days") // nolint:wrapcheck
	}

	duration := booking.DurationDays + req.ExtraDays
	total := booking.TotalAmount + req.ExtraAmount

	if err = s.update(ctx, id, model.Patch{DurationDays: &duration, TotalAmount: &total}); err != nil {
		return err
	}

	booking.DurationDays = duration
	booking.TotalAmount = total

	log.Info().Str("booking_id", id).Int("duration_days", duration).Int64("total_amount", total).Msg("booking extended")

	s.publish(ctx, model.EventExtended, booking)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, unlock, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if !deleted {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	log.Info().Str("booking_id", id).Str("room_id", booking.RoomID).Msg("booking deleted")

	s.publish(ctx, model.EventDeleted, booking)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ListForRoom(ctx context.Context, roomID, scopeName string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.ListForRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, found, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return nil, failure.NotFound("room not found") // nolint:wrapcheck
	}

	var bookings []model.Booking

	switch scopeOrAll(scopeName) {
	case dto.ScopeAll:
		bookings, err = s.repo.ListByRoom(ctx, roomID)
	case dto.ScopeCurrent:
		bookings, err = s.availability.CurrentForRoom(ctx, roomID)
	case dto.ScopeFuture:
		bookings, err = s.availability.FutureForRoom(ctx, roomID)
	case dto.ScopePast:
		bookings, err = s.availability.PastForRoom(ctx, roomID)
	default:
		return nil, invalidScope(scopeName)
	}

	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to list bookings for room")

		return nil, fmt.Errorf("failed to list bookings for room: %w", err)
	}

	return toResponses(bookings), nil
}

func (s *serviceImpl) ListForGuest(ctx context.Context, guestID, scopeName string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.ListForGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.guests.Get(ctx, guestID); err != nil {
		return nil, err // nolint:wrapcheck
	}

	var bookings []model.Booking

	switch scopeOrAll(scopeName) {
	case dto.ScopeAll:
		bookings, err = s.repo.ListByGuest(ctx, guestID)
	case dto.ScopeCurrent:
		bookings, err = s.availability.CurrentForGuest(ctx, guestID)
	case dto.ScopeFuture:
		bookings, err = s.availability.FutureForGuest(ctx, guestID)
	case dto.ScopePast:
		bookings, err = s.availability.PastForGuest(ctx, guestID)
	default:
		return nil, invalidScope(scopeName)
	}

	if err != nil {
		log.Error().Err(err).Str("guest_id", guestID).Msg("failed to list bookings for guest")

		return nil, fmt.Errorf("failed to list bookings for guest: %w", err)
	}

	return toResponses(bookings), nil
}

// List returns the front desk's booking board: checked-in stays first, then
// those still to arrive, then completed ones, newest booking date first
// within each group.
func (s *serviceImpl) List(ctx context.Context, search string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	if search = strings.ToLower(strings.TrimSpace(search)); search != constant.Empty {
		roomNumbers, err := s.roomNumbers(ctx)
		if err != nil {
			return res, err
		}

		bookings = slices.DeleteFunc(bookings, func(b model.Booking) bool {
			return !matches(b, roomNumbers[b.RoomID], search)
		})
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		if c := cmp.Compare(statusRank[a.Status()], statusRank[b.Status()]); c != 0 {
			return c
		}

		return b.BookingDate.Compare(a.BookingDate)
	})

	res.FromModels(shared.Paginate(bookings, params), len(bookings), params.Limit)

	return res, nil
}

func (s *serviceImpl) roomNumbers(ctx context.Context) (map[string]string, error) {
	rooms, err := s.roomRepo.List(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	numbers := make(map[string]string, len(rooms))
	for _, room := range rooms {
		numbers[room.ID] = room.RoomNumber
	}

	return numbers, nil
}

var statusRank = map[model.Status]int{
	model.StatusActive:    0,
	model.StatusPending:   1,
	model.StatusCompleted: 2,
}

func matches(b model.Booking, roomNumber, term string) bool {
	for _, field := range []string{b.GuestName, b.NationalID, b.Phone, roomNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

func (s *serviceImpl) now() time.Time {
	return timezone.ToAppTime(s.clock())
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return model.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// loadLocked takes the booking's room lock and reads the booking again under
// it, so preconditions are checked against the latest state.
func (s *serviceImpl) loadLocked(ctx context.Context, id string) (model.Booking, func(), error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return model.Booking{}, nil, err
	}

	unlock, err := s.lockRoom(ctx, booking.RoomID)
	if err != nil {
		return model.Booking{}, nil, err
	}

	booking, err = s.load(ctx, id)
	if err != nil {
		unlock()

		return model.Booking{}, nil, err
	}

	return booking, unlock, nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, roomID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, shared.BuildCacheKey(lockKeyRoom, roomID))
	if errors.Is(err, lock.ErrNotAcquired) {
		log.Warn().Err(err).Str("room_id", roomID).Msg("room lock not acquired")

		return nil, failure.Conflict("room is busy, try again") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return nil, fmt.Errorf("failed to lock room: %w", err)
	}

	return unlock, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, patch model.Patch) error {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if !updated {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

// publish announces a lifecycle event. Delivery problems never fail the
// command that caused them.
func (s *serviceImpl) publish(ctx context.Context, eventType model.EventType, booking model.Booking) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+string(eventType))
	defer scope.End()

	event := model.NewEvent(eventType, booking, s.now())

	err := s.events.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topic, kafka.Message{Key: booking.ID, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", string(eventType)).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

func scopeOrAll(scope string) string {
	if scope == constant.Empty {
		return dto.ScopeAll
	}

	return scope
}

func invalidScope(scope string) error {
	return failure.BadRequestFromString(fmt.Sprintf("invalid scope %q, expected one of all, current, future, past", scope)) // nolint:wrapcheck
}

func toResponses(bookings []model.Booking) []dto.BookingResponse {
	res := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res
}
