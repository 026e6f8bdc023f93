package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func TestScheduleJob_EmitsUseCaseEvent(t *testing.T) {
	clients, projects, jobs, stages, rules, holidays, _ := setupRepos(t)
	byName := seedCanonicalPipeline(t, stages, rules)
	job := seedJob(t, clients, projects, jobs, byName[domain.StageNesting].ID,
		testutil.WithJobDate(domain.ColumnDelivery, day(2026, time.March, 20)))

	rec := &recordingObserver{}
	svc := NewScheduleService(jobs, stages, rules, holidays, rec)

	_, err := svc.ScheduleJob(context.Background(), job.ID)
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	event := rec.events[0]
	assert.Equal(t, "schedule-job", event.Name)
	assert.True(t, event.Success)
	assert.NoError(t, event.Err)
	assert.Equal(t, job.ID, event.Fields["job_id"])
	assert.Equal(t, 3, event.Fields["resolved"])
	assert.False(t, event.StartedAt.IsZero())
}

func TestAdvanceJob_EmitsFailureEvent(t *testing.T) {
	_, _, jobs, stages, rules, _, _ := setupRepos(t)
	seedCanonicalPipeline(t, stages, rules)

	rec := &recordingObserver{}
	svc := NewStatusService(jobs, stages, rec)

	_, err := svc.AdvanceJob(context.Background(), "missing")
	require.Error(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "advance-job", rec.events[0].Name)
	assert.False(t, rec.events[0].Success)
	assert.Error(t, rec.events[0].Err)
}

func TestSlogObserver_WritesEventFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "init-lead-times",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"created": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "use case completed")
	assert.Contains(t, out, "use_case=init-lead-times")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "created=3")
}

func TestSlogObserver_ErrorsGoToErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "schedule-job",
		Success: false,
		Err:     assert.AnError,
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "use case failed")
	assert.Contains(t, out, assert.AnError.Error())
}

func TestNewSlogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	obs := NewSlogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "anything"})
}
