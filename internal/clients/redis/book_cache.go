package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mmoslabs/mmos-backend/internal/library"
	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/utils"
)

// BookCache memoizes the grouped books dashboard per project. Invalidation
// bumps a per-project generation counter instead of deleting entries, so a
// write never needs a key scan; stale generations age out via TTL.
type BookCache interface {
	GetDashboard(ctx context.Context, projectID uuid.UUID) (*library.Dashboard, bool)
	SetDashboard(ctx context.Context, projectID uuid.UUID, dash *library.Dashboard) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
	Close() error
}

type bookCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewBookCache(log *logger.Logger) (BookCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("BOOK_CACHE_TTL", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &bookCache{
		log: log.With("service", "RedisBookCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *bookCache) GetDashboard(ctx context.Context, projectID uuid.UUID) (*library.Dashboard, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	key, err := c.dashboardKey(ctx, projectID)
	if err != nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache read failed", "error", err)
		}
		return nil, false
	}
	var dash library.Dashboard
	if err := json.Unmarshal(raw, &dash); err != nil {
		c.log.Warn("cache payload corrupt, ignoring", "error", err)
		return nil, false
	}
	return &dash, true
}

func (c *bookCache) SetDashboard(ctx context.Context, projectID uuid.UUID, dash *library.Dashboard) error {
	if c == nil || c.rdb == nil || dash == nil {
		return nil
	}
	key, err := c.dashboardKey(ctx, projectID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(dash)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *bookCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, c.generationKey(projectID)).Err()
}

func (c *bookCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *bookCache) dashboardKey(ctx context.Context, projectID uuid.UUID) (string, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey(projectID)).Int64()
	if err != nil && err != goredis.Nil {
		return "", err
	}
	return fmt.Sprintf("books:dash:%s:%d", projectID, gen), nil
}

func (c *bookCache) generationKey(projectID uuid.UUID) string {
	return fmt.Sprintf("books:gen:%s", projectID)
}
