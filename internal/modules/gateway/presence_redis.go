package gateway

import (
	"context"
	"sort"
	"time"

	"github.com/linguamate/core/internal/pkg/redisx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPresence = "lm:presence"

// RedisPresence keeps the presence map in a Redis hash so a shared cache can
// back the registry. Mutations still run on the single hub goroutine, so the
// get-then-delete in Remove is not raced within one process; concurrent
// multi-process writers remain a documented limitation of the design.
type RedisPresence struct {
	rc     *redisx.Client
	logger *zap.Logger
}

func NewRedisPresence(rc *redisx.Client, logger *zap.Logger) *RedisPresence {
	return &RedisPresence{rc: rc, logger: logger}
}

func (p *RedisPresence) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}

func (p *RedisPresence) Set(userID, socketID string) {
	ctx, cancel := p.opCtx()
	defer cancel()
	if err := p.rc.Raw().HSet(ctx, redisKeyPresence, userID, socketID).Err(); err != nil && p.logger != nil {
		p.logger.Warn("presence set failed", zap.String("user", userID), zap.Error(err))
	}
}

func (p *RedisPresence) Remove(userID, socketID string) bool {
	ctx, cancel := p.opCtx()
	defer cancel()

	current, err := p.rc.Raw().HGet(ctx, redisKeyPresence, userID).Result()
	if err != nil {
		if err != redis.Nil && p.logger != nil {
			p.logger.Warn("presence lookup failed", zap.String("user", userID), zap.Error(err))
		}
		return false
	}
	if current != socketID {
		return false
	}
	if err := p.rc.Raw().HDel(ctx, redisKeyPresence, userID).Err(); err != nil {
		if p.logger != nil {
			p.logger.Warn("presence remove failed", zap.String("user", userID), zap.Error(err))
		}
		return false
	}
	return true
}

func (p *RedisPresence) SocketID(userID string) (string, bool) {
	ctx, cancel := p.opCtx()
	defer cancel()

	sid, err := p.rc.Raw().HGet(ctx, redisKeyPresence, userID).Result()
	if err != nil {
		return "", false
	}
	return sid, true
}

func (p *RedisPresence) Snapshot() []string {
	ctx, cancel := p.opCtx()
	defer cancel()

	ids, err := p.rc.Raw().HKeys(ctx, redisKeyPresence).Result()
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("presence snapshot failed", zap.Error(err))
		}
		return []string{}
	}
	sort.Strings(ids)
	return ids
}
