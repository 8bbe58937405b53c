package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobFilter captures listing parameters. All set fields are ANDed.
type JobFilter struct {
	Search          string
	JobType         string
	ExperienceLevel string
	Location        string
	Statuses        []domain.JobStatus
	PostedByID      string
	Limit           int
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	IncrementApplications(ctx context.Context, id string) (int64, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, company, job_type, experience_level, location, work_mode, salary, description,
                    requirements, skills, status, views, applications_count, posted_by, posted_by_id,
                    posted_date, updated_date`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, company, job_type, experience_level, location, work_mode, salary, description,
                          requirements, skills, status, posted_by, posted_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, views, applications_count, posted_date, updated_date`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.JobType,
		job.ExperienceLevel,
		job.Location,
		job.WorkMode,
		job.Salary,
		job.Description,
		nonNil(job.Requirements),
		nonNil(job.Skills),
		job.Status,
		job.PostedBy,
		job.PostedByID,
	).Scan(&job.ID, &job.Views, &job.ApplicationsCount, &job.PostedDate, &job.UpdatedDate)
	return translateWriteErr(err)
}

// Update writes the editable fields. Counters are only changed through the
// Increment methods so concurrent increments are never overwritten.
func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, company=$2, job_type=$3, experience_level=$4, location=$5, work_mode=$6,
            salary=$7, description=$8, requirements=$9, skills=$10, status=$11, posted_by=$12,
            posted_by_id=$13, updated_date=NOW()
        WHERE id=$14
        RETURNING views, applications_count, updated_date`
	if !validID(job.ID) {
		return pgx.ErrNoRows
	}
	return conn(ctx, r.pool).QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.JobType,
		job.ExperienceLevel,
		job.Location,
		job.WorkMode,
		job.Salary,
		job.Description,
		nonNil(job.Requirements),
		nonNil(job.Skills),
		job.Status,
		job.PostedBy,
		job.PostedByID,
		job.ID,
	).Scan(&job.Views, &job.ApplicationsCount, &job.UpdatedDate)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &jobs[0], nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE jobs SET views = views + 1 WHERE id=$1 RETURNING views`
	return r.increment(ctx, query, id)
}

func (r *jobRepository) IncrementApplications(ctx context.Context, id string) (int64, error) {
	const query = `
        UPDATE jobs SET applications_count = applications_count + 1, updated_date=NOW()
        WHERE id=$1 RETURNING applications_count`
	return r.increment(ctx, query, id)
}

func (r *jobRepository) increment(ctx context.Context, query, id string) (int64, error) {
	if !validID(id) {
		return 0, pgx.ErrNoRows
	}
	var value int64
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	query, args := buildJobListQuery(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func buildJobListQuery(filter JobFilter) (string, []any) {
	base := `SELECT ` + jobColumns + ` FROM jobs`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.PostedByID != "" {
		args = append(args, filter.PostedByID)
		clauses = append(clauses, fmt.Sprintf("posted_by_id=$%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(search))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(company) LIKE %s OR LOWER(location) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		clauses = append(clauses, fmt.Sprintf("job_type=$%d", len(args)))
	}
	if filter.ExperienceLevel != "" {
		args = append(args, filter.ExperienceLevel)
		clauses = append(clauses, fmt.Sprintf("experience_level=$%d", len(args)))
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY posted_date DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	return query, args
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.JobType,
			&job.ExperienceLevel,
			&job.Location,
			&job.WorkMode,
			&job.Salary,
			&job.Description,
			&job.Requirements,
			&job.Skills,
			&job.Status,
			&job.Views,
			&job.ApplicationsCount,
			&job.PostedBy,
			&job.PostedByID,
			&job.PostedDate,
			&job.UpdatedDate,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
