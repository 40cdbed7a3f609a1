package middleware

import (
	"context"
	"time"

	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const rateLimitKeyPrefix = "web420:ratelimit:"

// RateLimitMiddleware throttles the credential routes per client ip.
// Counters live in Redis when it is configured so that every instance
// shares them, and in process otherwise.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware reads limits from s.Config.Auth. The store is
// chosen per Limit call, after s.Redis is known.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows Auth.RateLimitRequests requests per Auth.RateLimitWindow
// from one ip on the routes it wraps. name keeps the counters of
// different routes apart.
func (r *RateLimitMiddleware) Limit(name string) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.newStore(name),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewServerError(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("limiter", name).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, try again later")
		},
	})
}

// newStore returns a Redis store when a client exists. The memory store
// is a token bucket refilled at limit/window per second with a burst of
// limit, which admits the same number of requests per window.
func (r *RateLimitMiddleware) newStore(name string) middleware.RateLimiterStore {
	auth := r.server.Config.Auth

	if r.server.Redis != nil {
		return &RedisRateLimiterStore{
			client:  r.server.Redis,
			logger:  r.server.Logger,
			prefix:  rateLimitKeyPrefix + name + ":",
			limit:   auth.RateLimitRequests,
			window:  auth.RateLimitWindow,
			timeout: 250 * time.Millisecond,
		}
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(auth.RateLimitRequests) / auth.RateLimitWindow.Seconds()),
		Burst:     auth.RateLimitRequests,
		ExpiresIn: auth.RateLimitWindow,
	})
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed window counter in Redis. It lets
// requests through when Redis cannot be reached.
type RedisRateLimiterStore struct {
	client  *redis.Client
	logger  *zerolog.Logger
	prefix  string
	limit   int
	window  time.Duration
	timeout time.Duration
}

// Allow counts the request against identifier's current window. The
// first hit of a window sets the key's expiry; the window restarts when
// the key expires. Redis errors are logged and the request is allowed.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := s.prefix + identifier

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Error().Err(err).Str("op", "incr").Msg("redis rate limiter error")
		return true, nil
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.Error().Err(err).Str("op", "expire").Msg("redis rate limiter error")
		}
	}

	return count <= int64(s.limit), nil
}
