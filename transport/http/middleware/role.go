package middleware

import (
	"context"
	"net/http"
	"slices"

	"frontdesk/infras/otel"
	"frontdesk/permissions"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

var knownRoles = []string{constant.RoleAdmin, constant.RoleManager}

// Role enforces the staff role carried in the X-User-Role header against the
// embedded permission table.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type roleImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
}

func NewRoleMiddleware(otel otel.Otel, permissions *permissions.PermissionData) Role {
	return &roleImpl{
		otel:       otel,
		permission: permissions,
	}
}

// RBAC rejects requests without a known role with 401 and requests whose role
// is not listed for the route with 403. The role is stored in the request
// context for the handlers.
func (m *roleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.permission == nil {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		path := request.URL.Path
		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.Routes != nil {
			if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != constant.Empty {
				path = pattern
			}
		}

		permission := m.permission.FindPermissions(path, request.Method)

		scope.SetAttributes(map[string]any{
			"middleware.type": "rbac",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if m.permission.Skip || permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		userRole := request.Header.Get(constant.RequestHeaderUserRole)
		if !slices.Contains(knownRoles, userRole) {
			scope.TraceError(failure.MissingRoleError)
			response.WithError(writer, failure.MissingRoleError)

			return
		}

		if len(permission.Permissions) > 0 && !slices.Contains(permission.Permissions, userRole) {
			scope.TraceError(failure.ForbiddenError)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, userRole)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
