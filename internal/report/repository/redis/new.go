package redis

import (
	"careersight-srv/internal/report/repository"
	pkgLog "careersight-srv/pkg/log"
	pkgRedis "careersight-srv/pkg/redis"
)

type implCache struct {
	l     pkgLog.Logger
	redis pkgRedis.IRedis
}

// New creates a Redis-backed report data cache.
func New(l pkgLog.Logger, redis pkgRedis.IRedis) repository.Cache {
	return &implCache{
		l:     l,
		redis: redis,
	}
}
