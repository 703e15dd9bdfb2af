package middleware

import (
	"careersight-srv/pkg/jwt"
	"careersight-srv/pkg/log"
)

type Middleware struct {
	l          log.Logger
	jwtManager *jwt.Manager
}

func New(l log.Logger, jwtManager *jwt.Manager) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
}
