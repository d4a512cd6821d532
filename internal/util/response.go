package util

import (
	"errors"
	"net/http"

	"quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError translates the service error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a 500 and gets logged.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrMCQNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrHistoryNotFound),
		errors.Is(err, ErrNoCertificate):
		NotFound(c, err.Error())
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrDuplicateQuestion):
		Conflict(c, err.Error())
	case errors.Is(err, ErrInvalidMCQType):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrInvalidCredential):
		Unauthorized(c)
	case errors.Is(err, ErrCertificateIssuer):
		Error(c, http.StatusBadGateway, err.Error())
	default:
		LogInternalError(c, err)
	}
}
