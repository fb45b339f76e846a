package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Validation reports a request that could not be bound or failed binding rules.
func Validation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, HTTPError{
		Code:    "validation_failed",
		Message: "Request validation failed.",
		Details: err.Error(),
	})
}

// Respond maps err to a JSON error response. BusinessErrors keep their code;
// anything else is logged and reported as internal_error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unhandled error")
		_ = c.Error(err)
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	Write(c, StatusFor(be.Kind), be.Code, MessageFor(be.Code))
}

func StatusFor(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

var messages = map[string]string{
	"customer_not_found":        "Customer not found.",
	"pet_not_found":             "Pet not found.",
	"visit_not_found":           "Visit not found.",
	"treatment_not_found":       "Treatment not found.",
	"visit_treatment_not_found": "Visit treatment not found.",
	"note_not_found":            "Note not found.",
	"image_not_found":           "Image not found.",
	"invalid_state":             "The visit is no longer scheduled.",
	"invalid_storage_key":       "The storage key does not belong to this resource.",
	"upload_not_found":          "The uploaded object was not found in storage.",
	"invalid_upload":            "The uploaded object is not an accepted image.",
	"unsupported_content_type":  "This file type is not accepted.",
	"image_already_registered":  "This image is already registered.",
	"email_already_registered":  "An account with this email already exists.",
	"invalid_email_domain":      "The email domain does not look valid.",
	"invalid_credentials":       "Invalid email or password.",
	"password_too_long":         "Passwords can be at most 72 bytes long.",
	"invalid_date":              "Dates must use the YYYY-MM-DD format.",
	"invalid_id":                "Invalid identifier.",
}

// MessageFor returns the human message for a known code, or the code with
// underscores replaced by spaces.
func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return strings.ReplaceAll(code, "_", " ")
}
