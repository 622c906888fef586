package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorHandler maps domain errors to status codes: not found is 404, validation
// is 400, conflicts and stale versions are 409. Anything else is a 500 and is logged.
func ErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status, body := toErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": ctx.Request().Method,
				"path":   ctx.Path(),
			}).Error("request failed")
		}

		var sendErr error
		if ctx.Request().Method == http.MethodHead {
			sendErr = ctx.NoContent(status)
		} else {
			sendErr = ctx.JSON(status, body)
		}
		if sendErr != nil {
			logger.WithError(sendErr).Warn("failed to write error response")
		}
	}
}

func toErrorResponse(err error) (int, Error) {
	var (
		validationErrs validator.ValidationErrors
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErrs):
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fieldPath(fe.Namespace())] = fe.Tag()
		}
		return http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "request validation failed", Fields: fields}
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// fieldPath drops the root struct name, "CreateTourRequest.plannedRoute.startLocation"
// becomes "plannedRoute.startLocation".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
