package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"frontdesk/infras/otel/mocks"
	guestMocks "frontdesk/internal/domains/guest/mocks"
	"frontdesk/internal/domains/guest/model"
	"frontdesk/internal/domains/guest/model/dto"
	"frontdesk/internal/domains/guest/repository"
	"frontdesk/internal/domains/guest/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func TestGuestService_FindOrCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	existing := model.Guest{ID: "g1", Name: "Sari", NationalID: "3174", Phone: "0811"}

	tests := []struct {
		name      string
		phone     string
		setupMock func()
		wantID    string
		wantErr   bool
	}{
		{
			name:  "existing guest with same phone",
			phone: "0811",
			setupMock: func() {
				mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(existing, true, nil)
			},
			wantID: "g1",
		},
		{
			name:  "existing guest with new phone is refreshed",
			phone: "0899",
			setupMock: func() {
				mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(existing, true, nil)
				mockRepo.EXPECT().Update(gomock.Any(), "g1", map[string]any{model.FieldPhone: "0899"}).Return(true, nil)
			},
			wantID: "g1",
		},
		{
			name:  "existing guest and blank phone keeps stored phone",
			phone: "  ",
			setupMock: func() {
				mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(existing, true, nil)
			},
			wantID: "g1",
		},
		{
			name:  "new guest is created",
			phone: "0811",
			setupMock: func() {
				mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, nil)
				mockRepo.EXPECT().
					Create(gomock.Any(), model.Guest{Name: "Sari", NationalID: "3174", Phone: "0811"}).
					Return("g2", nil)
			},
			wantID: "g2",
		},
		{
			name:  "concurrent insert resolves to the winner",
			phone: "0811",
			setupMock: func() {
				gomock.InOrder(
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, nil),
					mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
						Return("", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(existing, true, nil),
				)
			},
			wantID: "g1",
		},
		{
			name:  "duplicate from the in-memory store resolves to the winner",
			phone: "0811",
			setupMock: func() {
				gomock.InOrder(
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, nil),
					mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", repository.ErrDuplicateNationalID),
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(existing, true, nil),
				)
			},
			wantID: "g1",
		},
		{
			name:  "duplicate that vanishes on re-read is an error",
			phone: "0811",
			setupMock: func() {
				gomock.InOrder(
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, nil),
					mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", repository.ErrDuplicateNationalID),
					mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, nil),
				)
			},
			wantErr: true,
		},
		{
			name:  "lookup error",
			phone: "0811",
			setupMock: func() {
				mockRepo.EXPECT().GetByNationalID(gomock.Any(), "3174").Return(model.Guest{}, false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			id, err := svc.FindOrCreate(context.Background(), "Sari", "3174", tt.phone)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestGuestService_FindOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	svc := service.New(repo, mocks.NewOtel())

	const callers = 256

	ids := make([]string, callers)
	errs := make([]error, callers)

	var (
		start sync.WaitGroup
		done  sync.WaitGroup
	)

	start.Add(1)

	for i := range callers {
		done.Add(1)

		go func() {
			defer done.Done()

			start.Wait()
			ids[i], errs[i] = svc.FindOrCreate(ctx, "Ann", "X1", "")
		}()
	}

	start.Done()
	done.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	guests, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, guests, 1)
}

func TestGuestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := service.New(repository.NewMemory(), mocks.NewOtel())

	id, err := svc.Create(ctx, dto.CreateGuestRequest{Name: " Budi ", NationalID: "3174", Phone: "0812"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, dto.GuestResponse{ID: id, Name: "Budi", NationalID: "3174", Phone: "0812"}, got)

	looked, err := svc.Lookup(ctx, "3174")
	require.NoError(t, err)
	assert.Equal(t, id, looked.ID)

	_, err = svc.Create(ctx, dto.CreateGuestRequest{Name: "Other", NationalID: "3174"})
	assert.True(t, failure.Is(err, http.StatusConflict))

	err = svc.Update(ctx, dto.UpdateGuestRequest{Phone: stringPtr("0813")}, id)
	require.NoError(t, err)

	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "0813", got.Phone)
	assert.Equal(t, "Budi", got.Name)

	err = svc.Update(ctx, dto.UpdateGuestRequest{Name: stringPtr("Nobody")}, "missing")
	assert.True(t, failure.Is(err, http.StatusNotFound))

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	assert.True(t, failure.Is(err, http.StatusNotFound))

	err = svc.Delete(ctx, id)
	assert.True(t, failure.Is(err, http.StatusNotFound))
}

func TestGuestService_UpdateNationalIDConflict(t *testing.T) {
	ctx := context.Background()
	svc := service.New(repository.NewMemory(), mocks.NewOtel())

	first, err := svc.Create(ctx, dto.CreateGuestRequest{Name: "A", NationalID: "111"})
	require.NoError(t, err)

	second, err := svc.Create(ctx, dto.CreateGuestRequest{Name: "B", NationalID: "222"})
	require.NoError(t, err)

	err = svc.Update(ctx, dto.UpdateGuestRequest{NationalID: stringPtr("111")}, second)
	assert.True(t, failure.Is(err, http.StatusConflict))

	// keeping its own national id is not a conflict
	err = svc.Update(ctx, dto.UpdateGuestRequest{NationalID: stringPtr(" 111 ")}, first)
	assert.NoError(t, err)
}

func TestGuestService_Lookup(t *testing.T) {
	svc := service.New(repository.NewMemory(), mocks.NewOtel())

	_, err := svc.Lookup(context.Background(), " ")
	assert.True(t, failure.Is(err, http.StatusBadRequest))

	_, err = svc.Lookup(context.Background(), "999")
	assert.True(t, failure.Is(err, http.StatusNotFound))
}

func TestGuestService_List(t *testing.T) {
	ctx := context.Background()
	svc := service.New(repository.NewMemory(), mocks.NewOtel())

	for _, req := range []dto.CreateGuestRequest{
		{Name: "Citra", NationalID: "300", Phone: "0813"},
		{Name: "andi", NationalID: "100", Phone: "0811"},
		{Name: "Budi", NationalID: "200", Phone: "0812"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, "", gDto.QueryParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Guests, 2)
	assert.Equal(t, "andi", res.Guests[0].Name)
	assert.Equal(t, "Budi", res.Guests[1].Name)

	res, err = svc.List(ctx, "CIT", gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Guests, 1)
	assert.Equal(t, "Citra", res.Guests[0].Name)

	res, err = svc.List(ctx, "0812", gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Guests, 1)
	assert.Equal(t, "200", res.Guests[0].NationalID)
}
