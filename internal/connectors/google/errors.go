package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// Drive API failures, classified from the HTTP status and error reason.
var (
	ErrUnauthorized = errors.New("google: credentials rejected")
	ErrForbidden    = errors.New("google: folder not shared with these credentials")
	ErrNotFound     = fmt.Errorf("google: %w", domain.ErrNotFound)
	ErrRateLimited  = errors.New("google: drive quota exceeded")
)

// Drive reports quota exhaustion as 403 with one of these reasons.
var quotaReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

// IsRateLimited reports whether err is a quota failure worth backing off on.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	return gerr.Code == http.StatusForbidden && hasQuotaReason(gerr)
}

// WrapError maps a Drive API error onto the sentinels above, keeping the
// server's message. Server errors and non-API errors are returned unchanged.
func WrapError(err error) error {
	var gerr *googleapi.Error
	if err == nil || !errors.As(err, &gerr) {
		return err
	}

	var sentinel error
	switch {
	case IsRateLimited(gerr):
		sentinel = ErrRateLimited
	case gerr.Code == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case gerr.Code == http.StatusForbidden:
		sentinel = ErrForbidden
	case gerr.Code == http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		return err
	}
	if gerr.Message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, gerr.Message)
}

func hasQuotaReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if quotaReasons[item.Reason] {
			return true
		}
	}
	return false
}
