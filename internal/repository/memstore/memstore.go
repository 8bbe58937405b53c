// Package memstore is an in-memory record store implementing the repository
// interfaces. It enforces the same unique keys as the Postgres schema and backs
// development mode and tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

// Store holds every collection behind one lock.
type Store struct {
	mu  sync.RWMutex
	txm sync.Mutex
	seq int64
	now func() time.Time

	users        map[string]*userRecord
	admins       map[string]*adminRecord
	jobs         map[string]*jobRecord
	applications map[string]*applicationRecord
}

type userRecord struct {
	domain.User
	seq int64
}

type adminRecord struct {
	domain.Admin
	seq int64
}

type jobRecord struct {
	domain.Job
	seq int64
}

type applicationRecord struct {
	domain.Application
	seq int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:          time.Now,
		users:        make(map[string]*userRecord),
		admins:       make(map[string]*adminRecord),
		jobs:         make(map[string]*jobRecord),
		applications: make(map[string]*applicationRecord),
	}
}

// SetClock overrides the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Users returns the user collection.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Admins returns the admin collection.
func (s *Store) Admins() repository.AdminRepository { return &adminRepo{s} }

// Jobs returns the job collection.
func (s *Store) Jobs() repository.JobRepository { return &jobRepo{s} }

// Applications returns the application collection.
func (s *Store) Applications() repository.ApplicationRepository { return &applicationRepo{s} }

// WithinTx serializes transactional blocks. There is no rollback: a failure
// part-way leaves earlier writes in place.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txm.Lock()
	defer s.txm.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

type txKey struct{}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func duplicate(index string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, index)
}

func copyStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = &userRecord{User: *user, seq: r.s.nextSeq()}
	return nil
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.s.users {
		if id != user.ID && existing.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	user.CreatedAt = rec.CreatedAt
	user.UpdatedAt = r.s.now()
	rec.User = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := rec.User
	return &user, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.Email == email {
			user := rec.User
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type adminRepo struct{ s *Store }

func (r *adminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Email == admin.Email {
			return duplicate("admins_email_key")
		}
	}
	now := r.s.now()
	admin.ID = uuid.NewString()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	r.s.admins[admin.ID] = &adminRecord{Admin: *admin, seq: r.s.nextSeq()}
	return nil
}

func (r *adminRepo) Update(_ context.Context, admin *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.admins[admin.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.s.admins {
		if id != admin.ID && existing.Email == admin.Email {
			return duplicate("admins_email_key")
		}
	}
	admin.CreatedAt = rec.CreatedAt
	admin.AcceptedTerms = rec.AcceptedTerms
	admin.UpdatedAt = r.s.now()
	rec.Admin = *admin
	return nil
}

func (r *adminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	admin := rec.Admin
	return &admin, nil
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.admins {
		if rec.Email == email {
			admin := rec.Admin
			return &admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *adminRepo) Stats(_ context.Context, adminID string) (domain.AdminStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var stats domain.AdminStats
	owned := map[string]bool{}
	for id, job := range r.s.jobs {
		if job.PostedByID != adminID {
			continue
		}
		owned[id] = true
		stats.TotalJobs++
		stats.TotalViews += job.Views
		if job.Status.AcceptsApplications() {
			stats.ActiveJobs++
		}
	}
	for _, app := range r.s.applications {
		if !owned[app.JobID] {
			continue
		}
		stats.TotalApplications++
		switch app.Status {
		case domain.ApplicationStatusPending:
			stats.PendingApplications++
		case domain.ApplicationStatusShortlisted:
			stats.ShortlistedApplications++
		}
	}
	return stats, nil
}

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	job.ID = uuid.NewString()
	job.Views = 0
	job.ApplicationsCount = 0
	job.PostedDate = now
	job.UpdatedDate = now
	job.Requirements = copyStrings(job.Requirements)
	job.Skills = copyStrings(job.Skills)
	r.s.jobs[job.ID] = &jobRecord{Job: *job, seq: r.s.nextSeq()}
	return nil
}

func (r *jobRepo) Update(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.jobs[job.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	job.Views = rec.Views
	job.ApplicationsCount = rec.ApplicationsCount
	job.PostedDate = rec.PostedDate
	job.UpdatedDate = r.s.now()
	job.Requirements = copyStrings(job.Requirements)
	job.Skills = copyStrings(job.Skills)
	rec.Job = *job
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	job := rec.Job
	job.Requirements = copyStrings(rec.Requirements)
	job.Skills = copyStrings(rec.Skills)
	return &job, nil
}

func (r *jobRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.jobs, id)
	return nil
}

func (r *jobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := make([]*jobRecord, 0)
	for _, rec := range r.s.jobs {
		if matchesJob(&rec.Job, filter) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PostedDate.Equal(matched[j].PostedDate) {
			return matched[i].PostedDate.After(matched[j].PostedDate)
		}
		return matched[i].seq > matched[j].seq
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	result := make([]domain.Job, 0, len(matched))
	for _, rec := range matched {
		job := rec.Job
		job.Requirements = copyStrings(rec.Requirements)
		job.Skills = copyStrings(rec.Skills)
		result = append(result, job)
	}
	return result, nil
}

func matchesJob(job *domain.Job, filter repository.JobFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if job.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.PostedByID != "" && job.PostedByID != filter.PostedByID {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		if !strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.Company), search) &&
			!strings.Contains(strings.ToLower(job.Location), search) {
			return false
		}
	}
	if filter.JobType != "" && string(job.JobType) != filter.JobType {
		return false
	}
	if filter.ExperienceLevel != "" && string(job.ExperienceLevel) != filter.ExperienceLevel {
		return false
	}
	if location := strings.ToLower(strings.TrimSpace(filter.Location)); location != "" {
		if !strings.Contains(strings.ToLower(job.Location), location) {
			return false
		}
	}
	return true
}

func (r *jobRepo) IncrementViews(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.jobs[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	rec.Views++
	return rec.Views, nil
}

func (r *jobRepo) IncrementApplications(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.jobs[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	rec.ApplicationsCount++
	rec.UpdatedDate = r.s.now()
	return rec.ApplicationsCount, nil
}

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications {
		if existing.UserID == app.UserID && existing.JobID == app.JobID {
			return duplicate("applications_user_job_key")
		}
	}
	now := r.s.now()
	app.ID = uuid.NewString()
	app.AppliedDate = now
	app.UpdatedDate = now
	r.s.applications[app.ID] = &applicationRecord{Application: *app, seq: r.s.nextSeq()}
	return nil
}

func (r *applicationRepo) UpdateStatus(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.applications[app.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	rec.Status = app.Status
	rec.Notes = app.Notes
	rec.UpdatedDate = r.s.now()
	app.UpdatedDate = rec.UpdatedDate
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	app := rec.Application
	return &app, nil
}

func (r *applicationRepo) GetByUserAndJob(_ context.Context, userID, jobID string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.applications {
		if rec.UserID == userID && rec.JobID == jobID {
			app := rec.Application
			return &app, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *applicationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) DeleteByJob(_ context.Context, jobID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	for id, rec := range r.s.applications {
		if rec.JobID == jobID {
			delete(r.s.applications, id)
			removed++
		}
	}
	return removed, nil
}

func (r *applicationRepo) ListByUser(_ context.Context, userID string) ([]domain.Application, error) {
	return r.list(func(app *applicationRecord) bool { return app.UserID == userID }), nil
}

func (r *applicationRepo) ListByJob(_ context.Context, jobID string) ([]domain.Application, error) {
	return r.list(func(app *applicationRecord) bool { return app.JobID == jobID }), nil
}

func (r *applicationRepo) list(match func(*applicationRecord) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := make([]*applicationRecord, 0)
	for _, rec := range r.s.applications {
		if match(rec) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].AppliedDate.Equal(matched[j].AppliedDate) {
			return matched[i].AppliedDate.After(matched[j].AppliedDate)
		}
		return matched[i].seq > matched[j].seq
	})
	result := make([]domain.Application, 0, len(matched))
	for _, rec := range matched {
		result = append(result, rec.Application)
	}
	return result
}
