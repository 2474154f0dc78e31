package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/interfaces/http/dto"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// sentinelCodes maps shared sentinel errors onto wire error codes
var sentinelCodes = []struct {
	err     error
	code    string
	message string
}{
	{shared.ErrNotFound, dto.ErrCodeNotFound, "Resource not found"},
	{shared.ErrAlreadyExists, dto.ErrCodeAlreadyExists, "Resource already exists"},
	{shared.ErrEmptyCart, dto.ErrCodeEmptyCart, "Cannot settle an empty cart"},
	{shared.ErrInvalidInput, dto.ErrCodeInvalidInput, "Invalid input"},
	{shared.ErrUnauthorized, dto.ErrCodeUnauthorized, "Unauthorized"},
	{shared.ErrForbidden, dto.ErrCodeForbidden, "Forbidden"},
}

// HandleError converts domain and sentinel errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			h.Error(c, dto.GetHTTPStatus(s.code), s.code, s.message)
			return
		}
	}

	h.InternalError(c, "An unexpected error occurred")
}

// bindID parses the :id path parameter, responding with 400 on failure
func (h *BaseHandler) bindID(c *gin.Context) (string, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid id")
		return "", false
	}
	return req.ID, true
}
