package router

import (
	"frontdesk/internal/handlers/booking"
	"frontdesk/internal/handlers/guest"
	"frontdesk/internal/handlers/room"
	"frontdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	Room    room.Handler
	Guest   guest.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Role           middleware.Role
}

// SetupRoutes mounts every domain under /v1 behind the role check.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Role.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, role middleware.Role) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Role:           role,
	}
}
