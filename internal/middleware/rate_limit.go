package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/assignment-api/internal/errs"
	"github.com/deppfellow/assignment-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitMessage is returned with every 429.
const RateLimitMessage = "Too many requests, please try again later"

const redisOpTimeout = 500 * time.Millisecond

// defaultRateLimitWindow replaces a non-positive window.
const defaultRateLimitWindow = time.Minute

// RateLimitMiddleware limits requests per client IP and records hits in New
// Relic.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether rate limiting is configured on.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit.Enabled
}

// Limit returns the limiting middleware. Windows are shared across
// instances through Redis when it is configured, and kept in process
// memory otherwise.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit

	var store middleware.RateLimiterStore
	if r.server.Redis != nil {
		store = NewRedisStore(r.server.Redis, cfg.Requests, cfg.Window, r.server.Logger)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
			Burst:     cfg.Requests,
			ExpiresIn: 3 * cfg.Window,
		})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil, nil).WithCause(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(RateLimitMessage)
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// windowCounter is the subset of the redis client used by RedisStore.
type windowCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStore is a fixed-window echo RateLimiterStore backed by Redis.
//
// Each identifier gets one counter per window. Redis failures let the
// request through.
type RedisStore struct {
	client   windowCounter
	limit    int64
	window   time.Duration
	log      *zerolog.Logger
	now      func() time.Time
	keySpace string
}

func NewRedisStore(client windowCounter, limit int, window time.Duration, logger *zerolog.Logger) *RedisStore {
	if window <= 0 {
		window = defaultRateLimitWindow
	}
	return &RedisStore{
		client:   client,
		limit:    int64(limit),
		window:   window,
		log:      logger,
		now:      time.Now,
		keySpace: "ratelimit",
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	bucket := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s:%s:%d", s.keySpace, identifier, bucket)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window expiry")
		}
	}

	return count <= s.limit, nil
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)
