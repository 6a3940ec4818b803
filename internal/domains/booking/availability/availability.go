// Package availability answers occupancy questions about rooms. Every answer
// is recomputed from the booking repository; nothing is cached.
package availability

import (
	"context"
	"fmt"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/repository"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared/constant"
	"frontdesk/shared/daterange"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const scopePrefix = constant.OtelServiceScopeName + ".Availability."

const (
	ReasonCurrentBooking = "room has a guest checked in"
	ReasonFutureBookings = "room has upcoming bookings"
)

type Engine interface {
	// IsAvailable reports whether roomID is free for [start, end). Checked-out
	// bookings and excludeBookingID are ignored.
	IsAvailable(ctx context.Context, roomID string, start, end daterange.Date, excludeBookingID string) (bool, error)
	CurrentForRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	FutureForRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	PastForRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	CurrentForGuest(ctx context.Context, guestID string) ([]model.Booking, error)
	FutureForGuest(ctx context.Context, guestID string) ([]model.Booking, error)
	PastForGuest(ctx context.Context, guestID string) ([]model.Booking, error)
	AvailableRoomIDs(ctx context.Context, start, end daterange.Date) ([]string, error)
	OccupiedRoomIDs(ctx context.Context) ([]string, error)
	BookedRoomIDs(ctx context.Context, date daterange.Date) ([]string, error)
	DeleteEligible(ctx context.Context, roomID string) (bool, string, error)
	Today() daterange.Date
}

type engineImpl struct {
	bookings repository.Booking
	rooms    roomRepo.Room
	otel     otel.Otel
	clock    timezone.Clock
}

func New(bookings repository.Booking, rooms roomRepo.Room, otel otel.Otel, clock timezone.Clock) Engine {
	return &engineImpl{
		bookings: bookings,
		rooms:    rooms,
		otel:     otel,
		clock:    clock,
	}
}

// Today is the calendar date of the clock in the application timezone.
func (e *engineImpl) Today() daterange.Date {
	return daterange.Of(timezone.ToAppTime(e.clock()))
}

func (e *engineImpl) IsAvailable(ctx context.Context, roomID string, start, end daterange.Date, excludeBookingID string) (res bool, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+"IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request, err := requestInterval(start, end)
	if err != nil {
		return false, err
	}

	bookings, err := e.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to list bookings for room")

		return false, fmt.Errorf("failed to list bookings for room: %w", err)
	}

	return free(bookings, request, excludeBookingID), nil
}

func (e *engineImpl) CurrentForRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	return e.forRoom(ctx, "CurrentForRoom", roomID, IsCurrent)
}

func (e *engineImpl) FutureForRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	return e.forRoom(ctx, "FutureForRoom", roomID, IsFuture)
}

func (e *engineImpl) PastForRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	return e.forRoom(ctx, "PastForRoom", roomID, IsPast)
}

func (e *engineImpl) CurrentForGuest(ctx context.Context, guestID string) ([]model.Booking, error) {
	return e.forGuest(ctx, "CurrentForGuest", guestID, IsCurrent)
}

func (e *engineImpl) FutureForGuest(ctx context.Context, guestID string) ([]model.Booking, error) {
	return e.forGuest(ctx, "FutureForGuest", guestID, IsFuture)
}

func (e *engineImpl) PastForGuest(ctx context.Context, guestID string) ([]model.Booking, error) {
	return e.forGuest(ctx, "PastForGuest", guestID, IsPast)
}

// AvailableRoomIDs lists, in inventory order, the rooms free for [start, end).
func (e *engineImpl) AvailableRoomIDs(ctx context.Context, start, end daterange.Date) (res []string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+"AvailableRoomIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request, err := requestInterval(start, end)
	if err != nil {
		return nil, err
	}

	return e.scanRooms(ctx, func(bookings []model.Booking) bool {
		return free(bookings, request, constant.Empty)
	})
}

// OccupiedRoomIDs lists the rooms with a guest checked in today.
func (e *engineImpl) OccupiedRoomIDs(ctx context.Context) (res []string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+"OccupiedRoomIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := e.Today()

	return e.scanRooms(ctx, func(bookings []model.Booking) bool {
		for _, booking := range bookings {
			if IsCurrent(booking, today) {
				return true
			}
		}

		return false
	})
}

// BookedRoomIDs lists the rooms reserved on date by a booking that has not
// checked out.
func (e *engineImpl) BookedRoomIDs(ctx context.Context, date daterange.Date) (res []string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+"BookedRoomIDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if date.IsZero() {
		return nil, failure.BadRequestFromString("date is required") // nolint:wrapcheck
	}

	return e.scanRooms(ctx, func(bookings []model.Booking) bool {
		for _, booking := range bookings {
			if !booking.IsCheckedOut() && booking.Occupied().Contains(date) {
				return true
			}
		}

		return false
	})
}

// DeleteEligible reports whether a room can leave the inventory. It cannot
// while a guest is checked in or a booking is still to come.
func (e *engineImpl) DeleteEligible(ctx context.Context, roomID string) (ok bool, reason string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+"DeleteEligible")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := e.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to list bookings for room")

		return false, constant.Empty, fmt.Errorf("failed to list bookings for room: %w", err)
	}

	today := e.Today()

	if len(filter(bookings, today, IsCurrent)) > 0 {
		return false, ReasonCurrentBooking, nil
	}

	if len(filter(bookings, today, IsFuture)) > 0 {
		return false, ReasonFutureBookings, nil
	}

	return true, constant.Empty, nil
}

func (e *engineImpl) forRoom(ctx context.Context, operation, roomID string, match func(model.Booking, daterange.Date) bool) (res []model.Booking, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+operation)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := e.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to list bookings for room")

		return nil, fmt.Errorf("failed to list bookings for room: %w", err)
	}

	return filter(bookings, e.Today(), match), nil
}

func (e *engineImpl) forGuest(ctx context.Context, operation, guestID string, match func(model.Booking, daterange.Date) bool) (res []model.Booking, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, scopePrefix+operation)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := e.bookings.ListByGuest(ctx, guestID)
	if err != nil {
		log.Error().Err(err).Str("guest_id", guestID).Msg("failed to list bookings for guest")

		return nil, fmt.Errorf("failed to list bookings for guest: %w", err)
	}

	return filter(bookings, e.Today(), match), nil
}

// scanRooms walks the inventory once against a single snapshot of all
// bookings and keeps the rooms whose bookings satisfy keep.
func (e *engineImpl) scanRooms(ctx context.Context, keep func([]model.Booking) bool) ([]string, error) {
	rooms, err := e.rooms.List(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	bookings, err := e.bookings.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	byRoom := make(map[string][]model.Booking, len(rooms))
	for _, booking := range bookings {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
	}

	ids := []string{}

	for _, room := range rooms {
		if keep(byRoom[room.ID]) {
			ids = append(ids, room.ID)
		}
	}

	return ids, nil
}

func requestInterval(start, end daterange.Date) (daterange.Interval, error) {
	if start.IsZero() || end.IsZero() {
		return daterange.Interval{}, failure.BadRequestFromString("start and end dates are required") // nolint:wrapcheck
	}

	if !end.After(start) {
		return daterange.Interval{}, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	return daterange.FromHalfOpen(start, end), nil
}

func free(bookings []model.Booking, request daterange.Interval, excludeBookingID string) bool {
	for _, booking := range bookings {
		if booking.ID == excludeBookingID || booking.IsCheckedOut() {
			continue
		}

		if daterange.Overlaps(request, booking.Occupied()) {
			return false
		}
	}

	return true
}

func filter(bookings []model.Booking, today daterange.Date, match func(model.Booking, daterange.Date) bool) []model.Booking {
	res := []model.Booking{}

	for _, booking := range bookings {
		if match(booking, today) {
			res = append(res, booking)
		}
	}

	return res
}

// IsCurrent reports a booking that is checked in and whose stay covers today.
func IsCurrent(b model.Booking, today daterange.Date) bool {
	return b.IsCheckedIn() && !b.IsCheckedOut() && b.Occupied().Contains(today)
}

// IsFuture reports a booking not yet checked in that starts after today.
func IsFuture(b model.Booking, today daterange.Date) bool {
	return !b.IsCheckedIn() && !b.IsCheckedOut() && b.BookingDate.After(today)
}

func IsPast(b model.Booking, _ daterange.Date) bool {
	return b.IsCheckedOut()
}
