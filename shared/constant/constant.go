package constant

import (
	"time"
)

const (
	ContextAnonymous = "anonymous"
	ContextSystem    = "system"
)

const (
	RoleGuest = "guest"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

const (
	RequestParamID        = "id"
	RequestParamSlug      = "slug"
	RequestParamPageName  = "pageName"
	RequestParamUserID    = "userId"
	RequestParamCommentID = "commentId"
	RequestParamReplyID   = "replyId"
	RequestMaxMemory      = 10 << 20 // 10 MB
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelOAuthScopeName    = "oauth"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderContentType   = "Content-Type"
)

const (
	ContentTypeJSON  = "application/json"
	FormFileSingle   = "image"
	FormFileMultiple = "images"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
	ResponseErrorInternal        = "internal server error"
)

const (
	Empty = ""
)
