package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository/memstore"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	store        *memstore.Store
	jobs         *JobService
	applications *ApplicationService
	auth         *AuthService
	events       *recordedEvents
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
		Listing: config.ListingConfig{MaxJobs: 100, ActiveJobs: 20},
	}
}

func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	store := memstore.New()
	dispatcher := events.NewInMemoryDispatcher()
	recorded := &recordedEvents{}
	for _, eventType := range []events.EventType{
		events.EventJobCreated,
		events.EventJobUpdated,
		events.EventJobDeleted,
		events.EventApplicationSubmitted,
		events.EventApplicationStatusChanged,
		events.EventApplicationDeleted,
	} {
		dispatcher.Subscribe(eventType, recorded.handle)
	}

	return &fixture{
		store: store,
		jobs: NewJobService(cfg, JobDependencies{
			JobRepo:         store.Jobs(),
			ApplicationRepo: store.Applications(),
			Transactor:      store,
			Dispatcher:      dispatcher,
		}),
		applications: NewApplicationService(ApplicationDependencies{
			JobRepo:         store.Jobs(),
			ApplicationRepo: store.Applications(),
			UserRepo:        store.Users(),
			Transactor:      store,
			Dispatcher:      dispatcher,
		}),
		auth: NewAuthService(cfg, AuthDependencies{
			UserRepo:  store.Users(),
			AdminRepo: store.Admins(),
		}),
		events: recorded,
	}
}

func (f *fixture) createJob(t *testing.T, title string, status domain.JobStatus) *domain.Job {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), CreateJobInput{
		Title:           title,
		Company:         "Acme",
		JobType:         string(domain.JobTypeFullTime),
		ExperienceLevel: string(domain.ExperienceMid),
		Location:        "Berlin",
		Status:          string(status),
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) apply(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	return f.applications.Submit(ctx, SubmitApplicationInput{
		JobID:     jobID,
		UserID:    userID,
		UserName:  "Candidate " + userID,
		UserEmail: userID + "@example.com",
		Resume:    "https://cdn.example.com/" + userID + ".pdf",
	})
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.IsCode(err, code), "expected %s, got %v", code, err)
}
