package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

const internalErrorMessage = "Internal server error"

// APIError is an error that is safe to show to the client as is.
type APIError struct {
	Status  int
	Message string
	Details interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, message string, details interface{}) *APIError {
	return &APIError{Status: status, Message: message, Details: details}
}

func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := s.toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(apiErr.Status)
	} else {
		werr = c.JSON(apiErr.Status, models.Envelope{
			Success: false,
			Error:   apiErr.Message,
			Details: apiErr.Details,
		})
	}
	if werr != nil {
		s.logger.Errorw("write error response", "error", werr)
	}
}

func (s *HTTPServer) toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, isString := httpErr.Message.(string); isString && m != "" {
			msg = m
		}
		if httpErr.Code >= http.StatusInternalServerError {
			msg = internalErrorMessage
		}
		return newAPIError(httpErr.Code, msg, nil)
	}

	switch {
	case errors.Is(err, service.ErrContactNotFound):
		return newAPIError(http.StatusNotFound, "Contact not found", nil)
	case errors.Is(err, service.ErrTagNotFound):
		return newAPIError(http.StatusNotFound, "Tag not found", nil)
	case errors.Is(err, service.ErrUserNotFound):
		return newAPIError(http.StatusNotFound, "User not found", nil)
	case errors.Is(err, service.ErrLoginUserNotFound), errors.Is(err, service.ErrLoginPasswordDoesNotMatch):
		return newAPIError(http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrUserInactive):
		return newAPIError(http.StatusUnauthorized, "Account is deactivated", nil)
	case errors.Is(err, service.ErrEmailTaken):
		return newAPIError(http.StatusConflict, "User already exists with this email", nil)
	case errors.Is(err, service.ErrTagExists):
		return newAPIError(http.StatusConflict, "Tag with this name already exists", nil)
	case errors.Is(err, service.ErrTagShared):
		return newAPIError(http.StatusConflict, "Tag is used by other users' contacts", nil)
	case service.IsNotFound(err):
		return newAPIError(http.StatusNotFound, "Resource not found", nil)
	case service.IsConflict(err):
		return newAPIError(http.StatusConflict, "Resource already exists", nil)
	}

	return newAPIError(http.StatusInternalServerError, internalErrorMessage, nil)
}
