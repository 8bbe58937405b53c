package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationRepository stores job applications. (UserID, JobID) is unique.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByUserAndJob(ctx context.Context, userID, jobID string) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository builds repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, job_id, user_id, applicant_name, applicant_email, applicant_phone,
                            job_title, company_name, job_location, resume, cover_letter, status, notes,
                            applied_date, updated_date`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, user_id, applicant_name, applicant_email, applicant_phone,
                                  job_title, company_name, job_location, resume, cover_letter, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, applied_date, updated_date`
	if !validID(app.JobID) {
		return pgx.ErrNoRows
	}
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		app.JobID,
		app.UserID,
		app.Applicant.Name,
		app.Applicant.Email,
		app.Applicant.Phone,
		app.Job.Title,
		app.Job.Company,
		app.Job.Location,
		app.Resume,
		app.CoverLetter,
		app.Status,
		app.Notes,
	).Scan(&app.ID, &app.AppliedDate, &app.UpdatedDate)
	return translateWriteErr(err)
}

// UpdateStatus writes status and notes only; snapshots are immutable.
func (r *applicationRepository) UpdateStatus(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, notes=$2, updated_date=NOW()
        WHERE id=$3
        RETURNING updated_date`
	if !validID(app.ID) {
		return pgx.ErrNoRows
	}
	return conn(ctx, r.pool).QueryRow(ctx, query, app.Status, app.Notes, app.ID).Scan(&app.UpdatedDate)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	return r.fetchSingle(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id)
}

func (r *applicationRepository) GetByUserAndJob(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	if !validID(jobID) {
		return nil, pgx.ErrNoRows
	}
	return r.fetchSingle(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id=$1 AND job_id=$2`, userID, jobID)
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Application, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps, err := scanApplications(rows)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &apps[0], nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteByJob removes every application of a job. Deleting zero rows is not an error.
func (r *applicationRepository) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	if !validID(jobID) {
		return 0, nil
	}
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM applications WHERE job_id=$1`, jobID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE user_id=$1 ORDER BY applied_date DESC`
	return r.list(ctx, query, userID)
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	if !validID(jobID) {
		return []domain.Application{}, nil
	}
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE job_id=$1 ORDER BY applied_date DESC`
	return r.list(ctx, query, jobID)
}

func (r *applicationRepository) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.UserID,
			&app.Applicant.Name,
			&app.Applicant.Email,
			&app.Applicant.Phone,
			&app.Job.Title,
			&app.Job.Company,
			&app.Job.Location,
			&app.Resume,
			&app.CoverLetter,
			&app.Status,
			&app.Notes,
			&app.AppliedDate,
			&app.UpdatedDate,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
