package http

import (
	"errors"

	"careersight-srv/internal/report"
	pkgErrors "careersight-srv/pkg/errors"
)

var (
	errInvalidReportType = pkgErrors.NewHTTPError(
		400, "Invalid report type",
	)
	errInsufficientData = pkgErrors.NewHTTPError(
		422, "Required source forms are not completed",
	)
	errReportNotFound = pkgErrors.NewHTTPError(
		404, "Report not found",
	)
	errReportNotPublished = pkgErrors.NewHTTPError(
		409, "Report is not published",
	)
	errDownloadURLFailed = pkgErrors.NewHTTPError(
		500, "Failed to generate download URL",
	)
	errGenerationTimeout = pkgErrors.NewHTTPError(
		504, "Report generation took longer than expected, please retry",
	)
	errGenerationMalformed = pkgErrors.NewHTTPError(
		502, "The generated report was malformed, try regenerating",
	)
	errGenerationFailed = pkgErrors.NewHTTPError(
		500, "Report generation failed",
	)
)

func (h *handler) mapError(err error) error {
	var genErr *report.GenerateError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case report.KindAPITimeout:
			return errGenerationTimeout
		case report.KindParseError:
			return errGenerationMalformed
		default:
			return errGenerationFailed
		}
	}

	switch {
	case errors.Is(err, report.ErrInvalidReportType):
		return errInvalidReportType
	case errors.Is(err, report.ErrInsufficientData):
		return errInsufficientData
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrReportNotPublished):
		return errReportNotPublished
	case errors.Is(err, report.ErrDownloadURLFailed):
		return errDownloadURLFailed
	default:
		return err
	}
}
