package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/sms-relay/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *SMSHandler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	setupValidators()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
	)
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "Not Found", nil))
	})

	router.GET("/healthz", handler.Health)

	chain := []gin.HandlerFunc{requirePost()}
	if cfg.HTTP.ValidateSignature {
		chain = append(chain, signatureMiddleware(cfg.Twilio.AuthToken, cfg.HTTP.PublicURL, logger))
	}
	chain = append(chain, rateLimitMiddleware(cfg.HTTP.RateLimit, logger), handler.ReceiveSMS)
	router.Any(cfg.HTTP.SMSPath, chain...)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
