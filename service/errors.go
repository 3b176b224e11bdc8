package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPErrorHandler renders apperr kinds and echo errors with one envelope.
// Internal error detail is only exposed in development.
func HTTPErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err, c, development)

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			slog.Error("failed to write error response", "error", werr)
		}
	}
}

func errorResponse(err error, c echo.Context, development bool) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, ErrorResponse{
				Error:   "Route not found",
				Message: fmt.Sprintf("Cannot %s %s", c.Request().Method, c.Request().URL.Path),
			}
		}
		return he.Code, ErrorResponse{
			Error:   http.StatusText(he.Code),
			Message: fmt.Sprint(he.Message),
		}
	}

	kind := apperr.KindOf(err)
	if kind != apperr.KindInternal {
		return kind.Status(), ErrorResponse{Error: kind.Title(), Message: apperr.MessageOf(err)}
	}

	slog.Error("request failed",
		"error", err,
		"method", c.Request().Method,
		"path", c.Request().URL.Path)

	message := "Something went wrong"
	if development {
		message = err.Error()
	}
	return http.StatusInternalServerError, ErrorResponse{Error: kind.Title(), Message: message}
}
