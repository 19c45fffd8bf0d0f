package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"todoapi/internal/adapter/http/helper"
	"todoapi/pkg/config"
	"todoapi/pkg/telemetry"
)

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter tracks per-client request counts in an in-memory cache.
// Budgets are keyed by "METHOD /route"; the "default" entry applies to
// everything else.
type RateLimiter struct {
	cache   *cache.Cache
	configs map[string]config.RateLimitConfig
	metrics *telemetry.AppMetrics
}

func NewRateLimiter(configs map[string]config.RateLimitConfig, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		metrics: metrics,
	}
}

func (rl *RateLimiter) configFor(method, path string) config.RateLimitConfig {
	if cfg, ok := rl.configs[method+" "+path]; ok {
		return cfg
	}

	if cfg, ok := rl.configs["default"]; ok {
		return cfg
	}

	return config.RateLimitConfig{Requests: 60, Window: time.Minute}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg := rl.configFor(c.Request.Method, path)
		key := fmt.Sprintf("%s %s %s", c.Request.Method, path, c.ClientIP())

		now := time.Now()
		entry := rateLimitEntry{Count: 0, ResetTime: now.Add(cfg.Window)}

		if cached, found := rl.cache.Get(key); found {
			entry = cached.(rateLimitEntry)

			if now.After(entry.ResetTime) {
				entry = rateLimitEntry{Count: 0, ResetTime: now.Add(cfg.Window)}
			}
		}

		entry.Count++
		rl.cache.Set(key, entry, time.Until(entry.ResetTime))

		remaining := cfg.Requests - entry.Count

		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if entry.Count > cfg.Requests {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(path)
			}

			helper.SendError(c, http.StatusTooManyRequests, "RATE_LIMITED", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
