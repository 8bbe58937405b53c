package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/job-board/internal/domain"
)

func TestTranslateWriteErr(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "applications_user_job_key"}
	err := translateWriteErr(fmt.Errorf("insert: %w", dup))
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Contains(t, err.Error(), "applications_user_job_key")

	other := &pgconn.PgError{Code: "23502"}
	assert.Same(t, error(other), translateWriteErr(other))
	assert.NoError(t, translateWriteErr(nil))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2b4e-0a4f-4a57-9a55-8d2f3f0c7e11"))
	assert.False(t, validID("not-a-uuid"))
	assert.False(t, validID(""))
}

func TestBuildJobListQueryBase(t *testing.T) {
	query, args := buildJobListQuery(JobFilter{
		Statuses: domain.OpenJobStatuses,
		Limit:    100,
	})

	assert.Contains(t, query, "status IN ($1,$2)")
	assert.Contains(t, query, "ORDER BY posted_date DESC LIMIT 100")
	assert.Equal(t, []any{domain.JobStatusActive, domain.JobStatusPublished}, args)
}

func TestBuildJobListQueryAllFilters(t *testing.T) {
	query, args := buildJobListQuery(JobFilter{
		Search:          " Go_Dev ",
		JobType:         "Full-time",
		ExperienceLevel: "Mid Level",
		Location:        "Berlin",
		Statuses:        []domain.JobStatus{domain.JobStatusActive},
		PostedByID:      "admin-1",
	})

	assert.Contains(t, query, "status IN ($1)")
	assert.Contains(t, query, "posted_by_id=$2")
	assert.Contains(t, query, "(LOWER(title) LIKE $3 OR LOWER(company) LIKE $3 OR LOWER(location) LIKE $3)")
	assert.Contains(t, query, "job_type=$4")
	assert.Contains(t, query, "experience_level=$5")
	assert.Contains(t, query, "LOWER(location) LIKE $6")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, `%go\_dev%`, args[2])
	assert.Equal(t, "%berlin%", args[5])
	assert.Len(t, args, 6)
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"go"}, nonNil([]string{"go"}))
}
