package room

import (
	"net/http"

	"frontdesk/infras/otel"
	bookingService "frontdesk/internal/domains/booking/service"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/domains/room/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/daterange"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Room
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Room, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/overview", handler.GetOverview)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/occupied", handler.GetOccupiedRooms)
		routerGroup.Get("/booked", handler.GetBookedRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Get("/{id}/availability", handler.GetRoomAvailability)
		routerGroup.Get("/{id}/bookings", handler.GetRoomBookings)
	})
}

func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, dto.CreateRoomResponse{ID: id})
}

// GetRooms lists the inventory, optionally for one category.
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(request); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.List(ctx, request.URL.Query().Get(constant.RequestParamCategory), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithMessage(writer, http.StatusOK, "Room updated successfully")
}

func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// GetRoomAvailability answers whether the room is free for [start, end),
// ignoring the booking named by exclude.
func (handler *Handler) GetRoomAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomAvailability")
	defer scope.End()

	start, end, err := dateRange(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	exclude := request.URL.Query().Get(constant.RequestParamExclude)

	res, err := handler.service.Availability(ctx, chi.URLParam(request, constant.RequestParamID), start, end, exclude)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check room availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetRoomBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomBookings")
	defer scope.End()

	scopeName := request.URL.Query().Get(constant.RequestParamScope)

	res, err := handler.bookings.ListForRoom(ctx, chi.URLParam(request, constant.RequestParamID), scopeName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings for room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOverview splits the inventory into free and taken rooms. Without dates
// it covers tonight.
func (handler *Handler) GetOverview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	start, end, err := dateRange(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Overview(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room overview")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetAvailableRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	start, end, err := dateRange(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AvailableIDs(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetOccupiedRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupiedRooms")
	defer scope.End()

	res, err := handler.service.OccupiedIDs(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupied rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetBookedRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedRooms")
	defer scope.End()

	date, err := queryDate(request, constant.RequestParamDate)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.BookedIDs(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func dateRange(request *http.Request) (start, end daterange.Date, err error) {
	if start, err = queryDate(request, constant.RequestParamStart); err != nil {
		return start, end, err
	}

	end, err = queryDate(request, constant.RequestParamEnd)

	return start, end, err
}

// queryDate reads a YYYY-MM-DD query parameter; absent means the zero date.
func queryDate(request *http.Request, param string) (daterange.Date, error) {
	value := request.URL.Query().Get(param)
	if value == constant.Empty {
		return daterange.Date{}, nil
	}

	date, err := daterange.Parse(value)
	if err != nil {
		return daterange.Date{}, failure.BadRequestFromString(param + " must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	return date, nil
}
