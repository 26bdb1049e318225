package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one structured line per request and records the
// request in the HTTP metrics.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		elapsed := time.Since(start)
		status := ctx.Writer.Status()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(elapsed.Seconds())

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if len(ctx.Errors) > 0 {
			event = event.Str("errors", ctx.Errors.String())
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", ctx.ClientIP()).
			Msg("request")
	}
}
