package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// structValidator adapts validator/v10 to echo.Validator.
type structValidator struct {
	v *validator.Validate
}

func newStructValidator() *structValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return &structValidator{v: v}
}

func (s *structValidator) Validate(i any) error {
	return s.v.Struct(i)
}

// NewRouter builds the echo instance serving the API, the health probe and
// the API documentation. spec may be nil, in which case no docs are served.
func NewRouter(server ServerInterface, spec *openapi3.T, logger logrus.FieldLogger, level log.Lvl) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(level)
	e.Validator = newStructValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if spec != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, spec)
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	RegisterHandlers(e, server)
	return e
}
