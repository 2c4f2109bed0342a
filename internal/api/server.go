package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/metrics"
	"github.com/annel0/woodland/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Server - диагностический HTTP сервер: /health, /stats, /metrics.
// К игровому процессу доступа на запись не имеет.
type Server struct {
	router  *gin.Engine
	srv     *http.Server
	game    *metrics.GameMetrics
	process *metrics.ProcessMetrics
	logger  *logging.Logger
}

// Config содержит конфигурацию диагностического сервера
type Config struct {
	Addr    string                  // адрес для запуска сервера, например ":9100"
	Service string                  // имя сервиса для otel и namespace метрик
	Game    *metrics.GameMetrics    // метрики симуляции (обязательно)
	Process *metrics.ProcessMetrics // метрики процесса (может быть nil)
	Logger  *logging.Logger
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewServer создает диагностический сервер
func NewServer(cfg Config) (*Server, error) {
	if cfg.Game == nil {
		return nil, errors.New("api: game metrics required")
	}
	if cfg.Service == "" {
		cfg.Service = "woodland"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetGameLogger()
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(cfg.Service))
	router.Use(middleware.NewRequestLogger(cfg.Logger).Handler())

	promMw, err := middleware.NewPrometheusMiddleware("diag", cfg.Game.Registry())
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, cfg.Game.Registry())

	s := &Server{
		router:  router,
		game:    cfg.Game,
		process: cfg.Process,
		logger:  cfg.Logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)

	return s, nil
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start запускает сервер и блокируется до Shutdown
func (s *Server) Start() error {
	s.logger.Info("📈 Диагностика доступна на %s (/metrics, /stats, /health)", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("diagnostics listen %s: %w", s.srv.Addr, err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь завершения запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleHealth проверка состояния
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleStats возвращает статистику симуляции и процесса
func (s *Server) handleStats(c *gin.Context) {
	snap := s.game.Snapshot()
	stats := map[string]interface{}{
		"ticks":  snap.Ticks,
		"trees":  snap.Trees,
		"uptime": metrics.FormatUptime(snap.Uptime),
	}

	if s.process != nil {
		proc, err := s.process.Sample()
		if err != nil {
			s.logger.Debug("Не удалось снять метрики процесса: %v", err)
		} else {
			stats["process"] = proc
		}
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}
