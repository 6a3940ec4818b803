package booking_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/booking/model/dto"
	serviceMocks "frontdesk/internal/domains/booking/service/mocks"
	"frontdesk/internal/handlers/booking"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	service *serviceMocks.MockBooking
	otel    *mocks.Otel
	router  chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		service: serviceMocks.NewMockBooking(ctrl),
		otel:    mocks.NewOtel(),
		router:  chi.NewRouter(),
	}

	handler := booking.New(f.service, f.otel)
	handler.Router(f.router)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

const validBooking = `{
	"room_id": "room-1",
	"guest_name": "Ana Souza",
	"national_id": "12345678900",
	"number_of_people": 2,
	"total_amount": 30000,
	"paid_amount": 10000,
	"booking_date": "2024-06-10",
	"duration_days": 3
}`

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(f *fixture)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: validBooking,
			setupMock: func(f *fixture) {
				f.service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateBookingRequest) (string, error) {
						assert.Equal(t, "room-1", req.RoomID)
						assert.Equal(t, 3, req.DurationDays)

						return "booking-1", nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"data":{"id":"booking-1"}}`,
		},
		{
			name:       "malformed json",
			body:       `{"room_id":`,
			setupMock:  func(*fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       strings.Replace(validBooking, `"room_id"`, `"nights": 2, "room_id"`, 1),
			setupMock:  func(*fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid booking date",
			body:       strings.Replace(validBooking, "2024-06-10", "10/06/2024", 1),
			setupMock:  func(*fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero duration",
			body:       strings.Replace(validBooking, `"duration_days": 3`, `"duration_days": 0`, 1),
			setupMock:  func(*fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "room taken",
			body: validBooking,
			setupMock: func(f *fixture) {
				f.service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return("", failure.Conflict("room is not available for the requested dates"))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"room is not available for the requested dates"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.do(http.MethodPost, "/bookings", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		List(gomock.Any(), "ana", gDto.QueryParams{Page: 2, Limit: 5}).
		Return(dto.GetBookingsResponse{
			Bookings:  []dto.BookingResponse{{ID: "booking-1", Status: "active"}},
			TotalPage: 2,
			TotalData: 6,
		}, nil)

	rec := f.do(http.MethodGet, "/bookings?q=ana&page=2&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Data dto.GetBookingsResponse `json:"data"`
	}](t, rec)
	assert.Equal(t, 6, body.Data.TotalData)
	assert.Equal(t, "booking-1", body.Data.Bookings[0].ID)

	rec = f.do(http.MethodGet, "/bookings?page=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetBookingByID(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Get(gomock.Any(), "booking-1").Return(dto.BookingResponse{ID: "booking-1"}, nil)
	f.service.EXPECT().Get(gomock.Any(), "missing").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/bookings/booking-1", "").Code)

	rec := f.do(http.MethodGet, "/bookings/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, f.otel.Errors(), 1)
}

func TestHandler_Lifecycle(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.service.EXPECT().CheckIn(gomock.Any(), "booking-1").Return(nil),
		f.service.EXPECT().CheckIn(gomock.Any(), "booking-1").Return(failure.Conflict("booking is already checked in")),
		f.service.EXPECT().CheckOut(gomock.Any(), "booking-1").Return(nil),
		f.service.EXPECT().Delete(gomock.Any(), "booking-1").Return(nil),
	)

	rec := f.do(http.MethodPost, "/bookings/booking-1/check-in", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Guest checked in successfully"}`, rec.Body.String())

	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/bookings/booking-1/check-in", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/bookings/booking-1/check-out", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/bookings/booking-1", "").Code)
}

func TestHandler_ExtendBooking(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		Extend(gomock.Any(), "booking-1", dto.ExtendBookingRequest{ExtraDays: 2, ExtraAmount: 20000}).
		Return(nil)

	rec := f.do(http.MethodPost, "/bookings/booking-1/extend", `{"extra_days":2,"extra_amount":20000}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/bookings/booking-1/extend", `{"extra_days":0,"extra_amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/bookings/booking-1/extend", `{"extra_days":1,"extra_amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdatePayment(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.service.EXPECT().
			UpdatePayment(gomock.Any(), "booking-1", dto.UpdatePaymentRequest{PaidAmount: 30000}).
			Return(nil),
		f.service.EXPECT().
			UpdatePayment(gomock.Any(), "booking-1", dto.UpdatePaymentRequest{PaidAmount: 40000}).
			Return(failure.BadRequestFromString("paid amount cannot exceed the total amount")),
		f.service.EXPECT().
			UpdatePayment(gomock.Any(), "booking-1", gomock.Any()).
			Return(errors.New("connection reset")),
	)

	assert.Equal(t, http.StatusOK, f.do(http.MethodPatch, "/bookings/booking-1/payment", `{"paid_amount":30000}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/bookings/booking-1/payment", `{"paid_amount":40000}`).Code)
	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodPatch, "/bookings/booking-1/payment", `{"paid_amount":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/bookings/booking-1/payment", `{"paid_amount":-1}`).Code)
}
