// Package server exposes the proxy, video and chat APIs over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/proxy"
	"github.com/toumei/toumei/session"
	"github.com/toumei/toumei/video"
)

// Deps are the collaborators the handlers delegate to.
type Deps struct {
	Checker     *video.Checker
	Fetcher     *video.Fetcher
	Thumbnailer *video.Thumbnailer
	Searcher    *video.Searcher
	Store       session.Store
	// Forwarders are keyed by proxy token.
	Forwarders map[string]*proxy.Forwarder

	CorsOrigins      []string
	MaxMessageLength int
}

type Server struct {
	deps   Deps
	engine *gin.Engine
}

// ProxyPrefix is the path below which proxy tokens are served.
const ProxyPrefix = "/api/proxy/"

func New(deps Deps) *Server {
	s := &Server{deps: deps, engine: gin.New()}

	s.engine.Use(recovery(), requestLogger(), instrument(), cors(deps.CorsOrigins))
	s.routes()

	return s
}

func (s *Server) routes() {
	r := s.engine

	r.Any(ProxyPrefix+":token/*path", s.proxy)

	api := r.Group("/api")
	{
		api.GET("/video/:videoId", s.video)
		api.GET("/unblock/check/:videoId", s.check)
		api.GET("/resolve", s.resolve)
		api.GET("/thumbnail/:videoId", s.thumbnail)
		api.GET("/search", s.search)

		api.POST("/chat/send", s.chatSend)
		api.GET("/chat/history/:sessionId", s.chatHistory)
		api.GET("/chat/sessions", s.chatSessions)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
