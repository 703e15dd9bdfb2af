package repository

import "errors"

var (
	ErrReportNotFound = errors.New("repository: report not found")
	ErrPendingExists  = errors.New("repository: a pending report already exists for this owner and type")
	ErrNotPending     = errors.New("repository: report is not in pending status")
	ErrCacheMiss      = errors.New("repository: cache miss")
)
