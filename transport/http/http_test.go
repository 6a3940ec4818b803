package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"frontdesk/config"
	kafkaMocks "frontdesk/infras/kafka/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/booking/availability"
	bookingRepository "frontdesk/internal/domains/booking/repository"
	bookingService "frontdesk/internal/domains/booking/service"
	guestRepository "frontdesk/internal/domains/guest/repository"
	guestService "frontdesk/internal/domains/guest/service"
	roomRepository "frontdesk/internal/domains/room/repository"
	roomService "frontdesk/internal/domains/room/service"
	bookingHandler "frontdesk/internal/handlers/booking"
	guestHandler "frontdesk/internal/handlers/guest"
	roomHandler "frontdesk/internal/handlers/room"
	"frontdesk/permissions"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/shared/lock"
	"frontdesk/shared/timezone"
	transportHTTP "frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c *client) do(method, target, role, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if role != "" {
		req.Header.Set(constant.RequestHeaderUserRole, role)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	return rec
}

func (c *client) createdID(rec *httptest.ResponseRecorder) string {
	c.t.Helper()

	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data.ID
}

func newServer(t *testing.T) (*transportHTTP.HTTP, *client) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topic = "frontdesk.bookings"
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://desk.example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}
	cfg.App.CORS.AllowedHeaders = []string{constant.RequestHeaderUserRole}

	events := kafkaMocks.NewMockClient(ctrl)
	events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otl := mocks.NewOtel()
	clock := timezone.FixedClock(time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC))
	redisCache := cache.NewRedisCache(nil, otl)

	bookings := bookingRepository.NewMemory()
	rooms := roomRepository.NewMemory()

	engine := availability.New(bookings, rooms, otl, clock)
	guests := guestService.New(guestRepository.NewMemory(), otl)
	bookingSvc := bookingService.New(bookings, rooms, guests, engine, lock.NewLocal(time.Second), events, cfg, otl, clock)
	roomSvc := roomService.New(rooms, engine, cfg, redisCache, otl)

	r := router.New(router.DomainHandlers{
		Booking: bookingHandler.New(bookingSvc, otl),
		Room:    roomHandler.New(roomSvc, bookingSvc, otl),
		Guest:   guestHandler.New(guests, bookingSvc, otl),
	}, middleware.NewRoleMiddleware(otl, permissions.Get()))

	server := transportHTTP.New(cfg, r, middleware.NewAppMiddleware(otl, cfg, redisCache), events)

	return server, &client{t: t, handler: server.Handler()}
}

func TestHTTP_Health(t *testing.T) {
	server, c := newServer(t)

	rec := c.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
	assert.Equal(t, transportHTTP.ServerStateReady, server.State())
}

func TestHTTP_CORSPreflight(t *testing.T) {
	_, c := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/rooms", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://desk.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTP_FrontDeskFlow(t *testing.T) {
	_, c := newServer(t)

	rec := c.do(http.MethodPost, "/v1/rooms", constant.RoleManager, `{"room_number":"101","floor":1,"category":"Couple","beds":1,"bathrooms":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	roomID := c.createdID(c.do(http.MethodPost, "/v1/rooms", constant.RoleAdmin,
		`{"room_number":"101","floor":1,"category":"Couple","beds":1,"bathrooms":1}`))

	bookingID := c.createdID(c.do(http.MethodPost, "/v1/bookings", constant.RoleManager, `{
		"room_id": "`+roomID+`",
		"guest_name": "Ana Souza",
		"national_id": "12345678900",
		"number_of_people": 2,
		"total_amount": 30000,
		"paid_amount": 0,
		"booking_date": "2024-06-10",
		"duration_days": 3
	}`))

	rec = c.do(http.MethodPost, "/v1/bookings", constant.RoleManager, `{
		"room_id": "`+roomID+`",
		"guest_name": "Bruno Lima",
		"national_id": "98765432100",
		"number_of_people": 1,
		"total_amount": 10000,
		"paid_amount": 0,
		"booking_date": "2024-06-12",
		"duration_days": 1
	}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/v1/rooms/"+roomID+"/availability?start=2024-06-13&end=2024-06-15", constant.RoleManager, "")
	assert.JSONEq(t, `{"data":{"available":true}}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/v1/bookings/"+bookingID+"/check-in", constant.RoleManager, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/v1/rooms/occupied", constant.RoleManager, "")
	assert.JSONEq(t, `{"data":{"room_ids":["`+roomID+`"]}}`, rec.Body.String())

	rec = c.do(http.MethodDelete, "/v1/rooms/"+roomID, constant.RoleAdmin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/v1/guests/lookup?national_id=12345678900", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/v1/guests/lookup?national_id=12345678900", constant.RoleManager, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Ana Souza"`)
}
