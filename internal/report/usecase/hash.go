package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"careersight-srv/internal/model"
	"careersight-srv/internal/prompt"
	"careersight-srv/internal/report"
)

// sourceData is everything collected for one generation: the prompt context,
// the submissions it came from and the staleness hash over their contents.
type sourceData struct {
	promptCtx     prompt.Context
	submissionIDs []string
	hash          string
}

// collectSource gathers the latest completed answer sets for the report
// type's required forms plus any optional ones present. Returns the names of
// missing required forms instead of an error so callers can distinguish
// incomplete data from infrastructure failures.
func (uc *implUseCase) collectSource(ctx context.Context, ownerID, reportType string) (*sourceData, []string, error) {
	cfg, err := prompt.ConfigFor(reportType)
	if err != nil {
		return nil, nil, report.ErrInvalidReportType
	}

	promptCtx := prompt.Context{}
	ordered := make([]model.AnswerSet, 0, len(cfg.RequiredForms)+len(cfg.OptionalForms))
	submissionIDs := make([]string, 0, cap(ordered))
	missing := make([]string, 0)

	for _, formType := range cfg.RequiredForms {
		as, err := uc.submissions.GetLatestCompleted(ctx, ownerID, formType)
		if err != nil {
			return nil, nil, err
		}
		if as == nil {
			missing = append(missing, formType)
			continue
		}
		promptCtx[formType] = *as
		ordered = append(ordered, *as)
		submissionIDs = append(submissionIDs, as.SubmissionID)
	}

	for _, formType := range cfg.OptionalForms {
		as, err := uc.submissions.GetLatestCompleted(ctx, ownerID, formType)
		if err != nil {
			return nil, nil, err
		}
		if as == nil {
			continue
		}
		promptCtx[formType] = *as
		ordered = append(ordered, *as)
		submissionIDs = append(submissionIDs, as.SubmissionID)
	}

	if len(missing) > 0 {
		return nil, missing, nil
	}

	hash, err := sourceDataHash(ordered)
	if err != nil {
		return nil, nil, err
	}

	return &sourceData{
		promptCtx:     promptCtx,
		submissionIDs: submissionIDs,
		hash:          hash,
	}, nil, nil
}

// sourceDataHash digests the ordered (formType, answers) pairs actually used
// for a generation. encoding/json sorts map keys, so marshaling the answers
// is already canonical; identical source answers always produce the same
// hash. The hash is only ever compared, never interpreted.
func sourceDataHash(sets []model.AnswerSet) (string, error) {
	h := sha256.New()
	for _, as := range sets {
		answers, err := json.Marshal(as.Answers)
		if err != nil {
			return "", err
		}
		h.Write([]byte(as.FormType))
		h.Write([]byte{0})
		h.Write(answers)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
