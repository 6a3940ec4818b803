package repository_test

import (
	"context"
	"testing"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/shared/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(roomID, guestID, date string) model.Booking {
	return model.Booking{
		RoomID:         roomID,
		GuestID:        guestID,
		GuestName:      "Guest " + guestID,
		NumberOfPeople: 1,
		TotalAmount:    100,
		BookingDate:    daterange.MustParse(date),
		DurationDays:   2,
	}
}

func TestNew_DefaultsToMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreDriverMemory

	repo := repository.New(cfg, &postgres.Connection{}, mocks.NewOtel())

	id, err := repo.Create(context.Background(), newBooking("r1", "g1", "2024-06-10"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestMemory_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	id, err := repo.Create(ctx, newBooking("r1", "g1", "2024-06-10"))
	require.NoError(t, err)

	got, found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "r1", got.RoomID)
	assert.Equal(t, "2024-06-10", got.BookingDate.String())

	_, found, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_CreateKeepsGivenID(t *testing.T) {
	booking := newBooking("r1", "g1", "2024-06-10")
	booking.ID = "fixed-id"

	id, err := repository.NewMemory().Create(context.Background(), booking)

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	id, err := repo.Create(ctx, newBooking("r1", "g1", "2024-06-10"))
	require.NoError(t, err)

	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	paid := int64(50)

	ok, err := repo.Update(ctx, id, model.Patch{CheckInAt: &now, PaidAmount: &paid})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status())
	assert.Equal(t, int64(50), got.PaidAmount)
	assert.Equal(t, int64(100), got.TotalAmount)

	ok, err = repo.Update(ctx, "missing", model.Patch{PaidAmount: &paid})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	booking := newBooking("r1", "g1", "2024-06-10")
	booking.CheckInAt = &now

	id, err := repo.Create(ctx, booking)
	require.NoError(t, err)

	got, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	*got.CheckInAt = now.Add(time.Hour)
	got.PaidAmount = 99

	again, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, now, *again.CheckInAt)
	assert.Equal(t, int64(0), again.PaidAmount)
}

func TestMemory_ListsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	first, _ := repo.Create(ctx, newBooking("r1", "g1", "2024-06-20"))
	second, _ := repo.Create(ctx, newBooking("r2", "g1", "2024-06-10"))
	third, _ := repo.Create(ctx, newBooking("r1", "g2", "2024-06-01"))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second, third}, ids(all))

	byRoom, err := repo.ListByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{first, third}, ids(byRoom))

	byGuest, err := repo.ListByGuest(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, ids(byGuest))

	empty, err := repo.ListByRoom(ctx, "r9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	first, _ := repo.Create(ctx, newBooking("r1", "g1", "2024-06-10"))
	second, _ := repo.Create(ctx, newBooking("r1", "g1", "2024-06-12"))

	ok, err := repo.Delete(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, first)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{second}, ids(all))
}

func ids(bookings []model.Booking) []string {
	res := make([]string, len(bookings))
	for i, b := range bookings {
		res[i] = b.ID
	}

	return res
}
