package report

import "errors"

var (
	ErrInvalidReportType  = errors.New("invalid report type")
	ErrInsufficientData   = errors.New("required source forms are not completed")
	ErrReportNotFound     = errors.New("report not found")
	ErrReportNotPublished = errors.New("report is not published")
	ErrDownloadURLFailed  = errors.New("failed to generate download URL")
)
