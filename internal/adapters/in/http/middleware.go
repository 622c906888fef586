package http

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ActorHeader carries the id of the acting user, recorded in tracking history and incidents.
// Authentication happens upstream; the value is trusted as is.
const ActorHeader = "X-Actor-ID"

func Actor(ctx echo.Context) string {
	return strings.TrimSpace(ctx.Request().Header.Get(ActorHeader))
}

// RequestLogger writes one logrus entry per request. Errors are handed to the
// echo error handler first so the logged status is the one the client got.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}

			req, res := ctx.Request(), ctx.Response()
			entry := logger.WithFields(logrus.Fields{
				"method":  req.Method,
				"path":    ctx.Path(),
				"uri":     req.RequestURI,
				"status":  res.Status,
				"latency": time.Since(start).String(),
			})
			if actor := Actor(ctx); actor != "" {
				entry = entry.WithField("actor", actor)
			}

			switch {
			case res.Status >= 500:
				entry.Error("request")
			case res.Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}
