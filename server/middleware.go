package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/metrics"
)

func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Errorf("panic: %v", err)
		abort(c, http.StatusInternalServerError, constant.MsgInternal)
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}).Debug("request")
	}
}

func instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func cors(origins []string) gin.HandlerFunc {
	wildcard := len(origins) == 0 || lo.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case wildcard:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		// Upstream Access-Control-* headers are stripped by the proxy, so proxied
		// preflights are answered here as well.
		if c.Request.Method == http.MethodOptions {
			proxied := strings.HasPrefix(c.Request.URL.Path, ProxyPrefix)
			c.Header("Access-Control-Allow-Methods", lo.Ternary(proxied, "GET, HEAD, OPTIONS", "GET, POST, OPTIONS"))
			c.Header("Access-Control-Allow-Headers", lo.Ternary(proxied, "Range", "Content-Type"))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
