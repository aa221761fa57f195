package errors

import (
	"fmt"
	"net/http"
)

// FromStatus maps an upstream HTTP status to the application error taxonomy.
// 401 and 403 both mean "authorization error" to the workflow engine; the
// distinction does not matter for any fallback or redirect decision.
func FromStatus(status int, body string) *AppError {
	msg := fmt.Sprintf("upstream returned %d", status)
	if body != "" {
		msg = fmt.Sprintf("upstream returned %d: %s", status, body)
	}

	var code ErrorCode
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = ErrCodeUnauthorized
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status >= 400:
		code = ErrCodeUpstream
	default:
		code = ErrCodeInternal
	}

	return &AppError{
		Code:       code,
		Message:    msg,
		StatusCode: status,
	}
}
