package memstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

func TestApplicationPairIsUniqueUnderConcurrency(t *testing.T) {
	store := New()
	apps := store.Applications()
	ctx := context.Background()

	var created, duplicates int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := apps.Create(ctx, &domain.Application{UserID: "u1", JobID: "j1", Status: domain.ApplicationStatusPending})
			switch {
			case err == nil:
				atomic.AddInt32(&created, 1)
			case errors.Is(err, repository.ErrDuplicate):
				atomic.AddInt32(&duplicates, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
	assert.Equal(t, int32(19), duplicates)

	list, err := apps.ListByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserEmailIsUnique(t *testing.T) {
	users := New().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"}))
	err := users.Create(ctx, &domain.User{Name: "B", Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestJobListFiltersAndOrdering(t *testing.T) {
	store := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	})
	jobs := store.Jobs()
	ctx := context.Background()

	seed := []domain.Job{
		{Title: "Backend Engineer", Company: "Acme", Location: "Berlin", JobType: domain.JobTypeFullTime, Status: domain.JobStatusActive},
		{Title: "Designer", Company: "Backend Labs", Location: "Paris", JobType: domain.JobTypeContract, Status: domain.JobStatusPublished},
		{Title: "Ops", Company: "Acme", Location: "Backendville", JobType: domain.JobTypeFullTime, Status: domain.JobStatusClosed},
		{Title: "Intern", Company: "Acme", Location: "Berlin", JobType: domain.JobTypeInternship, Status: domain.JobStatusDraft},
	}
	for i := range seed {
		require.NoError(t, jobs.Create(ctx, &seed[i]))
	}

	open, err := jobs.List(ctx, repository.JobFilter{Statuses: domain.OpenJobStatuses})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "Designer", open[0].Title, "newest first")

	searched, err := jobs.List(ctx, repository.JobFilter{Statuses: domain.OpenJobStatuses, Search: "backend"})
	require.NoError(t, err)
	assert.Len(t, searched, 2, "matches title or company, closed job excluded")

	typed, err := jobs.List(ctx, repository.JobFilter{Statuses: domain.OpenJobStatuses, Search: "backend", JobType: "Full-time"})
	require.NoError(t, err)
	require.Len(t, typed, 1)
	assert.Equal(t, "Backend Engineer", typed[0].Title)

	capped, err := jobs.List(ctx, repository.JobFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, capped, 3)
}

func TestCountersAndMissingRows(t *testing.T) {
	store := New()
	jobs := store.Jobs()
	ctx := context.Background()

	job := &domain.Job{Title: "T", Company: "C", Status: domain.JobStatusActive}
	require.NoError(t, jobs.Create(ctx, job))

	views, err := jobs.IncrementViews(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	count, err := jobs.IncrementApplications(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	job.Title = "Renamed"
	require.NoError(t, jobs.Update(ctx, job))
	assert.Equal(t, int64(1), job.Views, "update keeps counters")

	_, err = jobs.IncrementViews(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, jobs.Delete(ctx, "missing"), pgx.ErrNoRows)
}

func TestWithinTxIsReentrant(t *testing.T) {
	store := New()
	calls := 0
	err := store.WithinTx(context.Background(), func(ctx context.Context) error {
		return store.WithinTx(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
