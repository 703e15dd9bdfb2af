package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"careersight-srv/internal/model"
	"careersight-srv/internal/report"
	"careersight-srv/internal/report/repository"
)

// ----------- report repository fake -----------

type fakeRepo struct {
	mu sync.Mutex

	byID      map[string]*model.Report
	createErr error
	getErr    error

	created   []*model.Report
	published []repository.PublishOptions
	failed    []repository.MarkFailedOptions
	viewed    []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*model.Report{}}
}

func (f *fakeRepo) add(rpt *model.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[rpt.ID] = rpt
}

func (f *fakeRepo) CreatePending(ctx context.Context, opts repository.CreatePendingOptions) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	maxVersion := 0
	for _, rpt := range f.byID {
		if rpt.OwnerID != opts.OwnerID || rpt.ReportType != opts.ReportType {
			continue
		}
		if rpt.Status == model.ReportStatusPending {
			return nil, repository.ErrPendingExists
		}
		if rpt.Version > maxVersion {
			maxVersion = rpt.Version
		}
	}

	rpt := &model.Report{
		ID:         fmt.Sprintf("report-%d", len(f.byID)+1),
		OwnerID:    opts.OwnerID,
		ReportType: opts.ReportType,
		Version:    maxVersion + 1,
		Status:     model.ReportStatusPending,
		CreatedAt:  time.Now(),
	}
	f.byID[rpt.ID] = rpt
	f.created = append(f.created, rpt)
	return rpt, nil
}

func (f *fakeRepo) Publish(ctx context.Context, opts repository.PublishOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rpt, ok := f.byID[opts.ReportID]
	if !ok || rpt.Status != model.ReportStatusPending {
		return repository.ErrNotPending
	}
	now := time.Now()
	rpt.Status = model.ReportStatusPublished
	rpt.Data = opts.Data
	rpt.SourceDataHash = opts.SourceDataHash
	rpt.SourceSubmissionIDs = opts.SourceSubmissionIDs
	rpt.ModelUsed = opts.ModelUsed
	rpt.GenerationDurationSeconds = opts.GenerationDurationSeconds
	rpt.ArtifactURL = opts.ArtifactURL
	rpt.GeneratedAt = &now
	f.published = append(f.published, opts)
	return nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, opts repository.MarkFailedOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rpt, ok := f.byID[opts.ReportID]; ok && !rpt.IsTerminal() {
		rpt.Status = model.ReportStatusFailed
		rpt.ErrorMessage = opts.ErrorMessage
	}
	f.failed = append(f.failed, opts)
	return nil
}

func (f *fakeRepo) GetCurrent(ctx context.Context, ownerID, reportType string) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	var current *model.Report
	for _, rpt := range f.byID {
		if rpt.OwnerID != ownerID || rpt.ReportType != reportType || rpt.Status != model.ReportStatusPublished {
			continue
		}
		if current == nil || rpt.Version > current.Version {
			current = rpt
		}
	}
	return current, nil
}

func (f *fakeRepo) GetPending(ctx context.Context, ownerID, reportType string) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rpt := range f.byID {
		if rpt.OwnerID == ownerID && rpt.ReportType == reportType && rpt.Status == model.ReportStatusPending {
			return rpt, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rpt, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	return rpt, nil
}

func (f *fakeRepo) MarkViewed(ctx context.Context, id string, viewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rpt, ok := f.byID[id]; ok && rpt.ViewedAt == nil {
		t := viewedAt
		rpt.ViewedAt = &t
	}
	f.viewed = append(f.viewed, id)
	return nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, opts repository.ListByOwnerOptions) ([]*model.Report, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*model.Report, 0)
	for _, rpt := range f.byID {
		if rpt.OwnerID != opts.OwnerID {
			continue
		}
		if opts.ReportType != "" && rpt.ReportType != opts.ReportType {
			continue
		}
		if opts.Status != "" && rpt.Status != opts.Status {
			continue
		}
		matched = append(matched, rpt)
	}
	return matched, int64(len(matched)), nil
}

// ----------- cache fake -----------

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]json.RawMessage
	getErr  error
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]json.RawMessage{}}
}

func (f *fakeCache) key(ownerID, reportType string) string {
	return ownerID + "|" + reportType
}

func (f *fakeCache) GetReportData(ctx context.Context, ownerID, reportType string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.entries[f.key(ownerID, reportType)]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return data, nil
}

func (f *fakeCache) SetReportData(ctx context.Context, ownerID, reportType string, data json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[f.key(ownerID, reportType)] = data
	f.sets++
	return nil
}

func (f *fakeCache) DeleteReportData(ctx context.Context, ownerID, reportType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, f.key(ownerID, reportType))
	f.deletes++
	return nil
}

// ----------- submission repository fake -----------

type fakeSubmissions struct {
	mu     sync.Mutex
	sets   map[string]*model.AnswerSet
	getErr error
}

func newFakeSubmissions() *fakeSubmissions {
	return &fakeSubmissions{sets: map[string]*model.AnswerSet{}}
}

func (f *fakeSubmissions) add(ownerID, formType string, answers map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sets[ownerID+"|"+formType] = &model.AnswerSet{
		FormType:     formType,
		OwnerID:      ownerID,
		SubmissionID: "sub-" + formType,
		Answers:      answers,
		CompletedAt:  time.Now(),
	}
}

func (f *fakeSubmissions) GetLatestCompleted(ctx context.Context, ownerID, formType string) (*model.AnswerSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sets[ownerID+"|"+formType], nil
}

// ----------- LLM fake -----------

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (f *fakeLLM) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Model() string { return "gpt-test" }

// ----------- queue fake -----------

type fakeQueue struct {
	mu         sync.Mutex
	ready      [][]byte
	completed  [][]byte
	released   [][]byte
	enqueueErr error
	claimErr   error
}

func (f *fakeQueue) Enqueue(ctx context.Context, payload []byte, delay time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.ready = append(f.ready, payload)
	return nil
}

func (f *fakeQueue) Claim(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.claimErr != nil {
		return nil, f.claimErr
	}
	if len(f.ready) == 0 {
		return nil, nil
	}
	payload := f.ready[0]
	f.ready = f.ready[1:]
	return payload, nil
}

func (f *fakeQueue) Complete(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.completed = append(f.completed, payload)
	return nil
}

func (f *fakeQueue) Release(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.released = append(f.released, payload)
	return nil
}

func (f *fakeQueue) RequeueExpired(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeQueue) PendingCount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.ready)), nil
}

// ----------- event publisher fake -----------

type fakeEvents struct {
	mu        sync.Mutex
	published []report.ReportEvent
	failed    []report.ReportEvent
}

func (f *fakeEvents) PublishReportPublished(ctx context.Context, evt report.ReportEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, evt)
	return nil
}

func (f *fakeEvents) PublishReportFailed(ctx context.Context, evt report.ReportEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failed = append(f.failed, evt)
	return nil
}
