package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"careersight-srv/internal/model"
	"careersight-srv/internal/report"
	pkgLog "careersight-srv/pkg/log"
	"careersight-srv/pkg/openai"
)

const testOwner = "user-1"

var testScope = model.Scope{UserID: testOwner, Role: "user"}

const validRoleImpactResponse = `{
	"impact_summary": "stable",
	"automation_risk": {"score": 40},
	"augmentation_opportunities": ["analysis"],
	"recommended_actions": ["learn prompting"]
}`

type testEnv struct {
	repo   *fakeRepo
	cache  *fakeCache
	subs   *fakeSubmissions
	llm    *fakeLLM
	queue  *fakeQueue
	events *fakeEvents
	uc     report.UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:   newFakeRepo(),
		cache:  newFakeCache(),
		subs:   newFakeSubmissions(),
		llm:    &fakeLLM{response: validRoleImpactResponse},
		queue:  &fakeQueue{},
		events: &fakeEvents{},
	}
	env.uc = New(pkgLog.NewNop(), env.repo, env.cache, env.subs, env.llm, env.queue, env.events, nil, Config{})
	return env
}

func (env *testEnv) seedRequiredForms() {
	env.subs.add(testOwner, model.FormCareerProfile, map[string]any{"current_role": "Analyst", "industry": "Finance"})
	env.subs.add(testOwner, model.FormSkillsAssessment, map[string]any{"technical_skills": []any{"SQL"}})
	env.subs.add(testOwner, model.FormWorkHistory, map[string]any{"recent_positions": "Analyst at Acme"})
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid report type", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: "NOPE"})
		if err != report.ErrInvalidReportType {
			t.Fatalf("expected ErrInvalidReportType, got %v", err)
		}
	})

	t.Run("insufficient data", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != report.ErrInsufficientData {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
		if env.llm.calls != 0 {
			t.Errorf("LLM should not be called without required forms")
		}
	})

	t.Run("happy path publishes and caches", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != model.ReportStatusPublished {
			t.Errorf("expected published status, got %s", out.Status)
		}
		if out.Version != 1 {
			t.Errorf("expected version 1, got %d", out.Version)
		}
		if len(out.Data) == 0 {
			t.Errorf("expected report data")
		}
		if env.llm.calls != 1 {
			t.Errorf("expected 1 LLM call, got %d", env.llm.calls)
		}
		if len(env.repo.published) != 1 {
			t.Fatalf("expected 1 publish, got %d", len(env.repo.published))
		}
		if env.repo.published[0].ModelUsed != "gpt-test" {
			t.Errorf("unexpected model: %s", env.repo.published[0].ModelUsed)
		}
		if len(env.repo.published[0].SourceSubmissionIDs) == 0 {
			t.Errorf("expected source submission IDs to be recorded")
		}
		if env.cache.sets != 1 {
			t.Errorf("expected cache populated once, got %d sets", env.cache.sets)
		}
		if len(env.events.published) != 1 {
			t.Errorf("expected 1 published event, got %d", len(env.events.published))
		}
	})

	t.Run("cache hit skips the pipeline", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		_ = env.cache.SetReportData(ctx, testOwner, model.ReportTypeRoleImpact, []byte(`{"cached":true}`))

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out.Data) != `{"cached":true}` {
			t.Errorf("expected cached data, got %s", out.Data)
		}
		if env.llm.calls != 0 {
			t.Errorf("cache hit must not call the LLM")
		}
	})

	t.Run("unchanged source hash skips the LLM", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		if _, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact}); err != nil {
			t.Fatalf("first generation failed: %v", err)
		}
		// Drop the cache so only the hash comparison can short-circuit.
		_ = env.cache.DeleteReportData(ctx, testOwner, model.ReportTypeRoleImpact)

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("second generation failed: %v", err)
		}
		if env.llm.calls != 1 {
			t.Errorf("expected LLM called once total, got %d", env.llm.calls)
		}
		if out.Version != 1 {
			t.Errorf("unchanged source must not allocate a new version, got %d", out.Version)
		}
	})

	t.Run("changed answers trigger regeneration with next version", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		if _, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact}); err != nil {
			t.Fatalf("first generation failed: %v", err)
		}
		_ = env.cache.DeleteReportData(ctx, testOwner, model.ReportTypeRoleImpact)
		env.subs.add(testOwner, model.FormCareerProfile, map[string]any{"current_role": "Senior Analyst", "industry": "Finance"})

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("second generation failed: %v", err)
		}
		if env.llm.calls != 2 {
			t.Errorf("expected 2 LLM calls, got %d", env.llm.calls)
		}
		if out.Version != 2 {
			t.Errorf("expected version 2, got %d", out.Version)
		}
	})

	t.Run("force bypasses cache and hash check", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		if _, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact}); err != nil {
			t.Fatalf("first generation failed: %v", err)
		}

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact, Force: true})
		if err != nil {
			t.Fatalf("forced generation failed: %v", err)
		}
		if env.llm.calls != 2 {
			t.Errorf("force must call the LLM again, got %d calls", env.llm.calls)
		}
		if out.Version != 2 {
			t.Errorf("expected version 2, got %d", out.Version)
		}
	})

	t.Run("gateway timeout marks failed without caching", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.llm.err = openai.ErrTimeout

		_, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		var genErr *report.GenerateError
		if !errors.As(err, &genErr) || genErr.Kind != report.KindAPITimeout {
			t.Fatalf("expected KindAPITimeout, got %v", err)
		}
		if len(env.repo.failed) != 1 {
			t.Fatalf("expected 1 markFailed, got %d", len(env.repo.failed))
		}
		if env.cache.sets != 0 {
			t.Errorf("failed generation must not write the cache")
		}
		if len(env.events.failed) != 1 {
			t.Errorf("expected 1 failed event, got %d", len(env.events.failed))
		}
	})

	t.Run("malformed response marks failed as parse error", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.llm.response = "sorry, I cannot do that"

		_, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		var genErr *report.GenerateError
		if !errors.As(err, &genErr) || genErr.Kind != report.KindParseError {
			t.Fatalf("expected KindParseError, got %v", err)
		}
		if len(env.repo.failed) != 1 {
			t.Errorf("expected the placeholder marked failed")
		}
	})

	t.Run("missing required response field marks failed", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.llm.response = `{"impact_summary": "only one field"}`

		_, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		var genErr *report.GenerateError
		if !errors.As(err, &genErr) || genErr.Kind != report.KindParseError {
			t.Fatalf("expected KindParseError, got %v", err)
		}
	})

	t.Run("existing pending placeholder is returned not duplicated", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.repo.add(&model.Report{
			ID: "pending-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPending,
		})

		out, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != "pending-1" || out.Status != model.ReportStatusPending {
			t.Errorf("expected the existing pending placeholder, got %+v", out)
		}
		if env.llm.calls != 0 {
			t.Errorf("must not generate while another generation is pending")
		}
	})
}

func TestQueueReportGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a pending placeholder", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		out, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != model.ReportStatusPending {
			t.Errorf("expected pending status, got %s", out.Status)
		}
		if len(env.queue.ready) != 1 {
			t.Fatalf("expected 1 enqueued item, got %d", len(env.queue.ready))
		}
		item, err := report.DecodeQueueItem(env.queue.ready[0])
		if err != nil {
			t.Fatalf("failed to decode queue item: %v", err)
		}
		if item.OwnerID != testOwner || item.ReportType != model.ReportTypeRoleImpact || item.PendingReportID != out.ReportID {
			t.Errorf("unexpected queue item: %+v", item)
		}
		if out.QueuedAt == "" {
			t.Errorf("expected queued_at timestamp")
		}
	})

	t.Run("second request is a no-op while pending", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		first, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ReportID != first.ReportID {
			t.Errorf("expected the same placeholder, got %s and %s", first.ReportID, second.ReportID)
		}
		if len(env.queue.ready) != 1 {
			t.Errorf("expected no second enqueue, got %d items", len(env.queue.ready))
		}
	})

	t.Run("unchanged source with a published report is a no-op", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		published, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		_ = env.cache.DeleteReportData(ctx, testOwner, model.ReportTypeRoleImpact)

		out, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != model.ReportStatusPublished {
			t.Errorf("expected published status, got %s", out.Status)
		}
		if out.ReportID != published.ID {
			t.Errorf("expected the existing report %s, got %s", published.ID, out.ReportID)
		}
		if len(env.queue.ready) != 0 {
			t.Errorf("unchanged source must not enqueue, got %d items", len(env.queue.ready))
		}
		if len(env.repo.created) != 1 {
			t.Errorf("unchanged source must not create a placeholder, got %d", len(env.repo.created))
		}
	})

	t.Run("changed answers queue a new generation", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		if _, err := env.uc.GenerateReport(ctx, testScope, report.GenerateInput{ReportType: model.ReportTypeRoleImpact}); err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		env.subs.add(testOwner, model.FormCareerProfile, map[string]any{"current_role": "Lead Analyst", "industry": "Finance"})

		out, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != model.ReportStatusPending {
			t.Errorf("expected pending status, got %s", out.Status)
		}
		if len(env.queue.ready) != 1 {
			t.Errorf("expected 1 enqueued item, got %d", len(env.queue.ready))
		}
	})

	t.Run("concurrent requests share one placeholder and one item", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		const callers = 16
		outs := make([]report.QueueOutput, callers)
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				outs[i], errs[i] = env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			if errs[i] != nil {
				t.Fatalf("caller %d failed: %v", i, errs[i])
			}
			if outs[i].ReportID != outs[0].ReportID {
				t.Errorf("caller %d got placeholder %s, want %s", i, outs[i].ReportID, outs[0].ReportID)
			}
		}
		if len(env.repo.created) != 1 {
			t.Errorf("expected exactly 1 placeholder, got %d", len(env.repo.created))
		}
		if len(env.queue.ready) != 1 {
			t.Errorf("expected exactly 1 queue item, got %d", len(env.queue.ready))
		}
	})

	t.Run("insufficient data", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != report.ErrInsufficientData {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("enqueue failure fails the placeholder", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.queue.enqueueErr = errors.New("redis down")

		_, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err == nil {
			t.Fatalf("expected an error")
		}
		if len(env.repo.failed) != 1 {
			t.Errorf("orphan placeholder must be marked failed")
		}
	})
}

func TestProcessInBackground(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path publishes the placeholder", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.repo.add(&model.Report{
			ID: "pending-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPending,
		})

		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "pending-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rpt, _ := env.repo.GetByID(ctx, "pending-1")
		if rpt.Status != model.ReportStatusPublished {
			t.Errorf("expected published, got %s", rpt.Status)
		}
		if env.llm.calls != 1 {
			t.Errorf("expected 1 LLM call, got %d", env.llm.calls)
		}
	})

	t.Run("superseded placeholder is a no-op", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.repo.add(&model.Report{
			ID: "done-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPublished,
		})

		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "done-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.llm.calls != 0 {
			t.Errorf("superseded item must not call the LLM")
		}
	})

	t.Run("vanished placeholder is a no-op", func(t *testing.T) {
		env := newTestEnv()
		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "ghost",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal generation failure completes the item", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		env.llm.err = openai.ErrTimeout
		env.repo.add(&model.Report{
			ID: "pending-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPending,
		})

		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "pending-1",
		})
		if err != nil {
			t.Fatalf("terminal failure should not be retried, got %v", err)
		}
		rpt, _ := env.repo.GetByID(ctx, "pending-1")
		if rpt.Status != model.ReportStatusFailed {
			t.Errorf("expected failed, got %s", rpt.Status)
		}
	})

	t.Run("forms incomplete at processing time fails the placeholder", func(t *testing.T) {
		env := newTestEnv()
		env.repo.add(&model.Report{
			ID: "pending-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPending,
		})

		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "pending-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rpt, _ := env.repo.GetByID(ctx, "pending-1")
		if rpt.Status != model.ReportStatusFailed {
			t.Errorf("expected failed, got %s", rpt.Status)
		}
	})

	t.Run("infrastructure error is returned for retry", func(t *testing.T) {
		env := newTestEnv()
		env.repo.add(&model.Report{
			ID: "pending-1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPending,
		})
		env.subs.getErr = errors.New("postgres down")

		err := env.uc.ProcessInBackground(ctx, report.QueueItem{
			ReportType: model.ReportTypeRoleImpact, OwnerID: testOwner, PendingReportID: "pending-1",
		})
		if err == nil {
			t.Fatalf("expected an error for retry")
		}
	})
}

func TestProcessNext(t *testing.T) {
	ctx := context.Background()

	t.Run("empty queue", func(t *testing.T) {
		env := newTestEnv()
		processed, err := env.uc.ProcessNext(ctx)
		if err != nil || processed {
			t.Fatalf("expected (false, nil), got (%v, %v)", processed, err)
		}
	})

	t.Run("successful item is completed", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()

		out, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact})
		if err != nil {
			t.Fatalf("queue failed: %v", err)
		}

		processed, err := env.uc.ProcessNext(ctx)
		if err != nil || !processed {
			t.Fatalf("expected (true, nil), got (%v, %v)", processed, err)
		}
		if len(env.queue.completed) != 1 {
			t.Errorf("expected item completed, got %d", len(env.queue.completed))
		}
		rpt, _ := env.repo.GetByID(ctx, out.ReportID)
		if rpt.Status != model.ReportStatusPublished {
			t.Errorf("expected published, got %s", rpt.Status)
		}
	})

	t.Run("infrastructure failure releases the item", func(t *testing.T) {
		env := newTestEnv()
		env.seedRequiredForms()
		if _, err := env.uc.QueueReportGeneration(ctx, testScope, report.QueueInput{ReportType: model.ReportTypeRoleImpact}); err != nil {
			t.Fatalf("queue failed: %v", err)
		}
		env.subs.getErr = errors.New("postgres down")

		processed, err := env.uc.ProcessNext(ctx)
		if !processed || err == nil {
			t.Fatalf("expected (true, error), got (%v, %v)", processed, err)
		}
		if len(env.queue.released) != 1 {
			t.Errorf("expected item released for retry, got %d", len(env.queue.released))
		}
	})

	t.Run("undecodable payload is dropped", func(t *testing.T) {
		env := newTestEnv()
		env.queue.ready = append(env.queue.ready, []byte("not json"))

		processed, err := env.uc.ProcessNext(ctx)
		if err != nil || !processed {
			t.Fatalf("expected (true, nil), got (%v, %v)", processed, err)
		}
		if len(env.queue.completed) != 1 {
			t.Errorf("bad payload must be completed so it cannot loop forever")
		}
	})
}

func TestReadOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("HasMinimumData lists missing forms", func(t *testing.T) {
		env := newTestEnv()
		env.subs.add(testOwner, model.FormCareerProfile, map[string]any{"current_role": "PM"})

		out, err := env.uc.HasMinimumData(ctx, testScope, model.ReportTypeRoleImpact)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Ready {
			t.Errorf("expected not ready")
		}
		if len(out.MissingForms) != 2 {
			t.Errorf("expected 2 missing forms, got %v", out.MissingForms)
		}
	})

	t.Run("GetExistingReport repopulates cache from store", func(t *testing.T) {
		env := newTestEnv()
		env.repo.add(&model.Report{
			ID: "r1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 3, Status: model.ReportStatusPublished, Data: []byte(`{"v":3}`),
		})

		out, err := env.uc.GetExistingReport(ctx, testScope, model.ReportTypeRoleImpact)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == nil || out.Version != 3 {
			t.Fatalf("expected version 3, got %+v", out)
		}
		if env.cache.sets != 1 {
			t.Errorf("expected cache repopulated")
		}
	})

	t.Run("GetExistingReport returns nil when none", func(t *testing.T) {
		env := newTestEnv()
		out, err := env.uc.GetExistingReport(ctx, testScope, model.ReportTypeRoleImpact)
		if err != nil || out != nil {
			t.Fatalf("expected (nil, nil), got (%+v, %v)", out, err)
		}
	})

	t.Run("MarkViewed rejects other owners", func(t *testing.T) {
		env := newTestEnv()
		env.repo.add(&model.Report{
			ID: "r1", OwnerID: "someone-else", ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPublished,
		})

		err := env.uc.MarkViewed(ctx, testScope, "r1")
		if err != report.ErrReportNotFound {
			t.Fatalf("expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("MarkViewed is first-view-wins", func(t *testing.T) {
		env := newTestEnv()
		env.repo.add(&model.Report{
			ID: "r1", OwnerID: testOwner, ReportType: model.ReportTypeRoleImpact,
			Version: 1, Status: model.ReportStatusPublished,
		})

		if err := env.uc.MarkViewed(ctx, testScope, "r1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rpt, _ := env.repo.GetByID(ctx, "r1")
		first := rpt.ViewedAt
		if first == nil {
			t.Fatalf("expected viewed_at set")
		}
		if err := env.uc.MarkViewed(ctx, testScope, "r1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rpt, _ = env.repo.GetByID(ctx, "r1")
		if rpt.ViewedAt != first {
			t.Errorf("second view must not overwrite the first timestamp")
		}
	})
}

func TestSourceDataHash(t *testing.T) {
	setA := model.AnswerSet{FormType: model.FormCareerProfile, Answers: map[string]any{"a": "1", "b": "2"}}
	setB := model.AnswerSet{FormType: model.FormSkillsAssessment, Answers: map[string]any{"skills": []any{"go"}}}

	t.Run("deterministic", func(t *testing.T) {
		h1, err := sourceDataHash([]model.AnswerSet{setA, setB})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		h2, err := sourceDataHash([]model.AnswerSet{setA, setB})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h1 != h2 {
			t.Errorf("hash not deterministic")
		}
	})

	t.Run("sensitive to answer changes", func(t *testing.T) {
		h1, _ := sourceDataHash([]model.AnswerSet{setA})
		changed := model.AnswerSet{FormType: model.FormCareerProfile, Answers: map[string]any{"a": "1", "b": "3"}}
		h2, _ := sourceDataHash([]model.AnswerSet{changed})
		if h1 == h2 {
			t.Errorf("different answers must produce different hashes")
		}
	})

	t.Run("sensitive to order", func(t *testing.T) {
		h1, _ := sourceDataHash([]model.AnswerSet{setA, setB})
		h2, _ := sourceDataHash([]model.AnswerSet{setB, setA})
		if h1 == h2 {
			t.Errorf("pair order is part of the digest")
		}
	})
}
