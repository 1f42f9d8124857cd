package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	CodeDuplicateEntry:     "You are already in the queue for this salon.",
	CodeInvalidInput:       "Invalid request.",
	CodeInvalidTransition:  "This queue entry cannot move to the requested status.",
	CodeStoreUnavailable:   "Storage is temporarily unavailable, please retry.",
	CodeForbidden:          "You are not allowed to perform this action.",
	CodeEmailTaken:         "User with this email already exists.",
	CodeInvalidCredentials: "Invalid credentials.",
	CodeAdminRequired:      "Admin access required.",
	CodeInvalidEmailDomain: "The email domain does not look valid.",
	CodeQueueEntryNotFound: "Queue entry not found.",
	CodeSalonNotFound:      "Salon not found.",
	CodeServiceNotFound:    "Service not found.",
	CodeOfferNotFound:      "Offer not found.",
	CodeVisitNotFound:      "Visit not found.",
	CodeUserNotFound:       "User not found.",
}

// FromError writes err as a JSON error. Business errors keep their code,
// anything else becomes a 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if code, ok := CodeOf(err); ok {
		if code == CodeStoreUnavailable {
			zlog.Warn().Err(err).Str("path", c.FullPath()).Msg(code)
		}
		msg, found := messages[code]
		if !found {
			msg = code
		}
		Write(c, StatusFor(code), code, msg)
		return
	}

	zlog.Error().Err(err).Str("path", c.FullPath()).Msg(fallbackCode)
	Internal(c, fallbackCode, "Unexpected error.")
}
