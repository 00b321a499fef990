package providerutils

import (
	"net/http"

	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

var ErrProviderInternalError = exception.ApplicationError{
	Code:       "provider_internal_error",
	StatusCode: http.StatusInternalServerError,
	Message:    "provider internal error or temporary unavailable",
}

var ErrRetryExceeded = exception.ApplicationError{
	Code:       "provider_retry_exceeded",
	StatusCode: http.StatusInternalServerError,
	Message:    "retry exceeded",
}

var ErrProviderRateLimitExceeded = exception.ApplicationError{
	Code:       "provider_rate_limited",
	StatusCode: http.StatusTooManyRequests,
	Message:    "provider rate limit exceeded",
}

var ErrProviderBadResponse = exception.ApplicationError{
	Code:       "provider_bad_response",
	StatusCode: http.StatusBadGateway,
	Message:    "provider returned an unusable response",
}
