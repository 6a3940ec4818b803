package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserRole contextKey = "user_role"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

const (
	RequestParamPage  = "page"
	RequestParamLimit = "limit"
)

const (
	RequestParamID         = "id"
	RequestParamSearch     = "q"
	RequestParamScope      = "scope"
	RequestParamStart      = "start"
	RequestParamEnd        = "end"
	RequestParamExclude    = "exclude"
	RequestParamDate       = "date"
	RequestParamCategory   = "category"
	RequestParamNationalID = "national_id"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 50
)

const (
	PqErrorCodeUniqueViolation = "23505"
)

const (
	DateTimeFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelLockScopeName       = "lock"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderUserRole           = "X-User-Role"
	RequestHeaderRetryAfter         = "Retry-After"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "INTERNAL SERVER ERROR"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
