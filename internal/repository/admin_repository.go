package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// AdminRepository handles persistence for employer accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Stats(ctx context.Context, adminID string) (domain.AdminStats, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, name, email, password_hash, phone, designation, company_name, company_website,
               company_size, industry, company_description, is_active, is_verified, accepted_terms,
               last_login_at, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (name, email, password_hash, phone, designation, company_name, company_website,
                            company_size, industry, company_description, is_active, is_verified, accepted_terms)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.pool).QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Phone,
		admin.Designation,
		admin.CompanyName,
		admin.CompanyWebsite,
		admin.CompanySize,
		admin.Industry,
		admin.CompanyDescription,
		admin.IsActive,
		admin.IsVerified,
		admin.AcceptedTerms,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	return translateWriteErr(err)
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	const query = `
        UPDATE admins
        SET name=$1, email=$2, password_hash=$3, phone=$4, designation=$5, company_name=$6, company_website=$7,
            company_size=$8, industry=$9, company_description=$10, is_active=$11, is_verified=$12,
            last_login_at=$13, updated_at=NOW()
        WHERE id=$14
        RETURNING updated_at`

	if !validID(admin.ID) {
		return pgx.ErrNoRows
	}
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Phone,
		admin.Designation,
		admin.CompanyName,
		admin.CompanyWebsite,
		admin.CompanySize,
		admin.Industry,
		admin.CompanyDescription,
		admin.IsActive,
		admin.IsVerified,
		admin.LastLoginAt,
		admin.ID,
	).Scan(&admin.UpdatedAt)
	return translateWriteErr(err)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	return r.fetchSingle(ctx, `SELECT `+adminColumns+` FROM admins WHERE id=$1`, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.fetchSingle(ctx, `SELECT `+adminColumns+` FROM admins WHERE email=$1`, email)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Phone,
		&admin.Designation,
		&admin.CompanyName,
		&admin.CompanyWebsite,
		&admin.CompanySize,
		&admin.Industry,
		&admin.CompanyDescription,
		&admin.IsActive,
		&admin.IsVerified,
		&admin.AcceptedTerms,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Stats(ctx context.Context, adminID string) (domain.AdminStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM jobs WHERE posted_by_id=$1),
            (SELECT COUNT(*) FROM jobs WHERE posted_by_id=$1 AND status IN ('Active','Published')),
            (SELECT COALESCE(SUM(views), 0)::BIGINT FROM jobs WHERE posted_by_id=$1),
            COUNT(a.id),
            COUNT(a.id) FILTER (WHERE a.status='Pending'),
            COUNT(a.id) FILTER (WHERE a.status='Shortlisted')
        FROM applications a
        JOIN jobs j ON j.id = a.job_id
        WHERE j.posted_by_id=$1`

	var stats domain.AdminStats
	err := conn(ctx, r.pool).QueryRow(ctx, query, adminID).Scan(
		&stats.TotalJobs,
		&stats.ActiveJobs,
		&stats.TotalViews,
		&stats.TotalApplications,
		&stats.PendingApplications,
		&stats.ShortlistedApplications,
	)
	return stats, err
}
