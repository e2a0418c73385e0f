package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-booking-server/internal/scheduling"
	"healthcare-booking-server/internal/utils"
)

// statusForCode maps scheduling error categories to HTTP statuses.
var statusForCode = map[scheduling.Code]int{
	scheduling.CodeInvalidArgument:    http.StatusBadRequest,
	scheduling.CodeUnauthenticated:    http.StatusUnauthorized,
	scheduling.CodePermissionDenied:   http.StatusForbidden,
	scheduling.CodeNotFound:           http.StatusNotFound,
	scheduling.CodeFailedPrecondition: http.StatusConflict,
	scheduling.CodeSlotUnavailable:    http.StatusConflict,
	scheduling.CodeInternal:           http.StatusInternalServerError,
}

// respondSchedulingError translates a scheduling core error into the
// standard response envelope, always carrying the stable code.
func respondSchedulingError(c *gin.Context, err error) {
	code := scheduling.CodeOf(err)
	status, ok := statusForCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	message := err.Error()
	if code == scheduling.CodeInternal {
		// Storage details stay in the logs.
		message = "internal error"
	}
	utils.ErrorWithCode(c, status, string(code), message)
}
