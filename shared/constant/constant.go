package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyOperator  contextKey = "operator"
	ContextKeyRequestID contextKey = "request_id"
)

const (
	DefaultOperator = "system"
)

const (
	RequestParamPage  = "page"
	RequestParamLimit = "limit"
)

const (
	RequestParamID      = "id"
	RequestParamGroupID = "groupID"
	RequestParamRange   = "range"
	RequestParamStart   = "start_date"
	RequestParamEnd     = "end_date"
	RequestParamAsOf    = "as_of"

	RequestParamStatus        = "status"
	RequestParamType          = "type"
	RequestParamGuestID       = "guest_id"
	RequestParamRoomID        = "room_id"
	RequestParamReservationID = "reservation_id"
	RequestParamAssignedTo    = "assigned_to"
	RequestParamPriority      = "priority"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	DateFormat    = time.RFC3339
	DayFormat     = "2006-01-02"
	InvoiceDay    = "20060102"
	ChartDayLabel = "Jan 02"
)

const (
	HoursPerDay = 24
)

const (
	CacheKeyReportPrefix = "report:"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderContentDisposition = "Content-Disposition"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderOperator           = "X-Operator"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
