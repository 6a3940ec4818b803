package availability_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/booking/availability"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/repository"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared/daterange"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	// 2024-06-11 10:00 UTC
	now     = time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	checkIn = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
)

type fixture struct {
	engine   availability.Engine
	bookings repository.Booking
	rooms    roomRepo.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	bookings := repository.NewMemory()
	rooms := roomRepo.NewMemory()

	return fixture{
		engine:   availability.New(bookings, rooms, mocks.NewOtel(), timezone.FixedClock(now)),
		bookings: bookings,
		rooms:    rooms,
	}
}

func (f fixture) room(t *testing.T, number string, floor int) string {
	t.Helper()

	id, err := f.rooms.Create(context.Background(), roomModel.Room{RoomNumber: number, Floor: floor, Category: roomModel.CategoryDouble})
	require.NoError(t, err)

	return id
}

func (f fixture) book(t *testing.T, booking model.Booking) string {
	t.Helper()

	id, err := f.bookings.Create(context.Background(), booking)
	require.NoError(t, err)

	return id
}

func stay(roomID, date string, days int) model.Booking {
	return model.Booking{RoomID: roomID, GuestID: "g1", BookingDate: daterange.MustParse(date), DurationDays: days, NumberOfPeople: 1}
}

func checkedIn(b model.Booking) model.Booking {
	at := checkIn
	b.CheckInAt = &at

	return b
}

func checkedOut(b model.Booking) model.Booking {
	b = checkedIn(b)
	at := checkIn.Add(24 * time.Hour)
	b.CheckOutAt = &at

	return b
}

func TestIsAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.room(t, "101", 1)
	existing := f.book(t, stay(room, "2024-06-10", 3))

	tests := []struct {
		name     string
		start    string
		end      string
		exclude  string
		expected bool
	}{
		{name: "overlaps last occupied day", start: "2024-06-12", end: "2024-06-14", expected: false},
		{name: "back to back after checkout day", start: "2024-06-13", end: "2024-06-15", expected: true},
		{name: "ends on first occupied day", start: "2024-06-08", end: "2024-06-10", expected: true},
		{name: "touches first occupied day", start: "2024-06-08", end: "2024-06-11", expected: false},
		{name: "request covers whole stay", start: "2024-06-01", end: "2024-06-30", expected: false},
		{name: "request inside stay", start: "2024-06-11", end: "2024-06-12", expected: false},
		{name: "excluding the booking itself", start: "2024-06-11", end: "2024-06-12", exclude: existing, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.engine.IsAvailable(ctx, room, daterange.MustParse(tt.start), daterange.MustParse(tt.end), tt.exclude)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsAvailable_CheckedOutFreesRoom(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 1)

	f.book(t, checkedOut(stay(room, "2024-06-10", 5)))

	got, err := f.engine.IsAvailable(context.Background(), room, daterange.MustParse("2024-06-11"), daterange.MustParse("2024-06-13"), "")

	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsAvailable_InvalidRange(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		start daterange.Date
		end   daterange.Date
	}{
		{name: "end equals start", start: daterange.MustParse("2024-06-10"), end: daterange.MustParse("2024-06-10")},
		{name: "end before start", start: daterange.MustParse("2024-06-10"), end: daterange.MustParse("2024-06-09")},
		{name: "missing end", start: daterange.MustParse("2024-06-10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.IsAvailable(context.Background(), "room", tt.start, tt.end, "")

			assert.True(t, failure.Is(err, http.StatusBadRequest))
		})
	}
}

func TestIsAvailable_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	bookings.EXPECT().ListByRoom(gomock.Any(), "room").Return(nil, errors.New("connection refused"))

	otl := mocks.NewOtel()
	engine := availability.New(bookings, roomRepo.NewMemory(), otl, timezone.FixedClock(now))

	_, err := engine.IsAvailable(context.Background(), "room", daterange.MustParse("2024-06-10"), daterange.MustParse("2024-06-11"), "")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Len(t, otl.Errors(), 1)
}

func TestRoomScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 1)

	current := f.book(t, checkedIn(stay(room, "2024-06-10", 3)))
	future := f.book(t, stay(room, "2024-06-20", 2))
	past := f.book(t, checkedOut(stay(room, "2024-06-01", 2)))
	// pending and starting today is neither current nor future
	f.book(t, stay(room, "2024-06-11", 1))
	// checked in but the stay ended yesterday
	f.book(t, checkedIn(stay(room, "2024-06-05", 2)))

	got, err := f.engine.CurrentForRoom(ctx, room)
	require.NoError(t, err)
	assert.Equal(t, []string{current}, ids(got))

	got, err = f.engine.FutureForRoom(ctx, room)
	require.NoError(t, err)
	assert.Equal(t, []string{future}, ids(got))

	got, err = f.engine.PastForRoom(ctx, room)
	require.NoError(t, err)
	assert.Equal(t, []string{past}, ids(got))
}

func TestGuestScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stayOf := func(guestID, date string) model.Booking {
		b := stay("room", date, 2)
		b.GuestID = guestID

		return b
	}

	current := f.book(t, checkedIn(stayOf("g1", "2024-06-10")))
	future := f.book(t, stayOf("g1", "2024-07-01"))
	past := f.book(t, checkedOut(stayOf("g1", "2024-05-01")))
	f.book(t, stayOf("g2", "2024-07-01"))

	got, err := f.engine.CurrentForGuest(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{current}, ids(got))

	got, err = f.engine.FutureForGuest(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{future}, ids(got))

	got, err = f.engine.PastForGuest(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{past}, ids(got))
}

func TestSystemWideScans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r201 := f.room(t, "201", 2)
	r101 := f.room(t, "101", 1)
	r102 := f.room(t, "102", 1)

	f.book(t, checkedIn(stay(r101, "2024-06-10", 3)))
	f.book(t, stay(r102, "2024-06-12", 2))
	f.book(t, stay(r102, "2024-06-14", 1))
	f.book(t, checkedOut(stay(r201, "2024-06-10", 5)))

	available, err := f.engine.AvailableRoomIDs(ctx, daterange.MustParse("2024-06-11"), daterange.MustParse("2024-06-13"))
	require.NoError(t, err)
	assert.Equal(t, []string{r201}, available)

	available, err = f.engine.AvailableRoomIDs(ctx, daterange.MustParse("2024-06-13"), daterange.MustParse("2024-06-14"))
	require.NoError(t, err)
	assert.Equal(t, []string{r101, r201}, available)

	occupied, err := f.engine.OccupiedRoomIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{r101}, occupied)

	booked, err := f.engine.BookedRoomIDs(ctx, daterange.MustParse("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, []string{r101, r102}, booked)

	booked, err = f.engine.BookedRoomIDs(ctx, daterange.MustParse("2024-06-30"))
	require.NoError(t, err)
	assert.Empty(t, booked)

	_, err = f.engine.BookedRoomIDs(ctx, daterange.Date{})
	assert.True(t, failure.Is(err, http.StatusBadRequest))
}

func TestDeleteEligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	occupied := f.room(t, "101", 1)
	reserved := f.room(t, "102", 1)
	empty := f.room(t, "103", 1)

	f.book(t, checkedIn(stay(occupied, "2024-06-10", 3)))
	f.book(t, stay(reserved, "2024-06-20", 2))
	f.book(t, checkedOut(stay(empty, "2024-06-01", 2)))

	tests := []struct {
		name   string
		roomID string
		ok     bool
		reason string
	}{
		{name: "guest checked in", roomID: occupied, ok: false, reason: availability.ReasonCurrentBooking},
		{name: "upcoming booking", roomID: reserved, ok: false, reason: availability.ReasonFutureBookings},
		{name: "only past bookings", roomID: empty, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason, err := f.engine.DeleteEligible(ctx, tt.roomID)

			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2024-06-11", newFixture(t).engine.Today().String())
}

func ids(bookings []model.Booking) []string {
	res := make([]string, len(bookings))
	for i, b := range bookings {
		res[i] = b.ID
	}

	return res
}
