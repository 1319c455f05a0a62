package server

import (
	"errors"
	"net/http"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/db"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// statusOf maps an error from the core packages to an HTTP status
func statusOf(err error) (int, errorBody) {
	var (
		he   *echo.HTTPError
		verr *model.ValidationError
		ferr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &he):
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, errorBody{Error: msg}
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorBody{Error: "validation failed", Reason: string(verr.Reason)}
	case errors.As(err, &ferr):
		return http.StatusBadRequest, errorBody{Error: "validation failed", Reason: ferr.Error()}
	case errors.Is(err, calendar.ErrInvalidDate):
		return http.StatusBadRequest, errorBody{Error: err.Error()}
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound, errorBody{Error: "task not found"}
	case errors.Is(err, db.ErrAmbiguousID):
		return http.StatusConflict, errorBody{Error: "id prefix matches more than one task"}
	}
	return http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)}
}

func errorHandler(err error, c echo.Context) {
	code, body := statusOf(err)
	if code == http.StatusInternalServerError {
		logger.Error("Internal server error", logger.F("error", err), logger.F("path", c.Request().URL.Path))
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logger.Error("Error sending response", logger.F("error", err))
	}
}
