package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmnet/farmledger/handlers"
	"github.com/farmnet/farmledger/internal/config"
	"github.com/farmnet/farmledger/internal/ledger"
	"github.com/farmnet/farmledger/internal/records"
	"github.com/farmnet/farmledger/pkg/logger"
	"github.com/farmnet/farmledger/pkg/metrics"
	"github.com/farmnet/farmledger/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: channel=%s chaincode=%s wallet=%s", cfg.Fabric.Channel, cfg.Fabric.Chaincode, cfg.Fabric.WalletPath)

	// connection profile must be readable at startup; it is never reloaded
	if _, err := os.Stat(cfg.Fabric.CCPPath); err != nil {
		logger.Fatalf("connection profile %s not readable: %v", cfg.Fabric.CCPPath, err)
	}

	mgr, err := ledger.NewManager(cfg.Fabric)
	if err != nil {
		logger.Fatalf("failed to initialize ledger connection manager: %v", err)
	}

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	handlers.RegisterHealth(r)

	// readiness: config loaded and wallet holds the default identity
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"profile": true,
			"wallet":  true,
		}
		ready := true
		if _, err := os.Stat(cfg.Fabric.CCPPath); err != nil {
			deps["profile"] = false
			ready = false
		}
		if _, err := os.Stat(cfg.Fabric.WalletPath); err != nil {
			deps["wallet"] = false
			ready = false
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ready": ready, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	auth := middleware.AuthMiddleware(cfg)
	api := r.Group("/api")
	handlers.RegisterInit(api, mgr, cfg.Fabric.Identity)
	handlers.NewAuthHandler(cfg, mgr).Register(api)
	for _, res := range records.All() {
		handlers.NewResourceHandler(mgr, res, cfg.Fabric.Identity).Register(api, auth)
	}

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting farmledger gateway on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
