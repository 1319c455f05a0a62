package server

import (
	"time"

	"github.com/existflow/mandarina/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request with its status and latency
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			// let the error handler write the status before it is logged
			c.Error(err)
		}

		res := c.Response()
		log := logger.WithFields(logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)))
		fields := []logger.Field{
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
			logger.F("remote", c.RealIP()),
		}
		if err != nil {
			log.Warn("HTTP request failed", append(fields, logger.F("error", err))...)
		} else {
			log.Info("HTTP request", fields...)
		}
		return nil
	}
}
