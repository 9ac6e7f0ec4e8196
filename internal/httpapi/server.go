// Package httpapi is the thin gin-based operator surface: enqueue text,
// inspect queue depth, record a review, force a retrain, and read/adjust
// settings. It never grows into a general-purpose product API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/agent"
	"github.com/b0gochort/spamwarden/internal/auth"
	"github.com/b0gochort/spamwarden/internal/middleware"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/review"
	"github.com/b0gochort/spamwarden/internal/scoring"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	logger  *zap.Logger
}

type Deps struct {
	Store   store.Store
	Queue   *queue.Service
	Review  *review.Service
	Scoring *scoring.Service
	Retrain *agent.RetrainAgentRunner
	Auth    *auth.Service
	Metrics *telemetry.Metrics
	Logger  *zap.Logger
	Addr    string
}

func New(d Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	h := &handlers{
		st:      d.Store,
		queue:   d.Queue,
		review:  d.Review,
		scoring: d.Scoring,
		retrain: d.Retrain,
		auth:    d.Auth,
		metrics: d.Metrics,
		logger:  d.Logger,
	}

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.health)
	v1.POST("/auth/login", h.login)
	v1.POST("/messages", h.enqueueMessage)
	v1.GET("/queue/counts", h.queueCounts)

	protected := v1.Group("")
	protected.Use(middleware.RequireModerator(d.Auth, d.Logger))
	{
		protected.POST("/messages/:id/review", h.reviewMessage)
		protected.POST("/admin/retrain", h.forceRetrain)
		protected.GET("/admin/settings", h.getSettings)
		protected.PUT("/admin/settings", h.updateSettings)
	}

	return &Server{
		router:  router,
		httpSrv: &http.Server{Addr: d.Addr, Handler: router},
		logger:  d.Logger,
	}
}

// Run blocks serving HTTP until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}
