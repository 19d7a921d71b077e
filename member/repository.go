package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that the member does not exist.
	ErrNotFound = errors.New("member: not found")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("member: email already exists")
)

// Repository handles data access for members.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Member, error)
	GetByEmail(ctx context.Context, email string) (Member, error)
	GetByID(ctx context.Context, memberID string) (Member, error)
}

// CreateParams contains write parameters for creating members.
type CreateParams struct {
	Email        string
	FullName     string
	PasswordHash string
	Branch       string
	Year         int
	Skills       []string
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed member repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new member with a hashed password.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Member, error) {
	const insertSQL = `
		INSERT INTO members (email, full_name, password_hash, branch, year, skills)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, full_name, password_hash, branch, year, reputation_score, skills, created_at, updated_at
	`

	m, err := scanMember(r.pool.QueryRow(ctx, insertSQL,
		params.Email,
		params.FullName,
		params.PasswordHash,
		params.Branch,
		params.Year,
		params.Skills,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Member{}, ErrDuplicateEmail
		}
		return Member{}, fmt.Errorf("member: create: %w", err)
	}

	return m, nil
}

// GetByEmail retrieves a member by email address.
func (r *PGRepository) GetByEmail(ctx context.Context, email string) (Member, error) {
	const selectSQL = `
		SELECT id, email, full_name, password_hash, branch, year, reputation_score, skills, created_at, updated_at
		FROM members
		WHERE email = $1
	`

	m, err := scanMember(r.pool.QueryRow(ctx, selectSQL, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrNotFound
		}
		return Member{}, fmt.Errorf("member: get by email: %w", err)
	}

	return m, nil
}

// GetByID retrieves a member by ID.
func (r *PGRepository) GetByID(ctx context.Context, memberID string) (Member, error) {
	const selectSQL = `
		SELECT id, email, full_name, password_hash, branch, year, reputation_score, skills, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	m, err := scanMember(r.pool.QueryRow(ctx, selectSQL, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrNotFound
		}
		return Member{}, fmt.Errorf("member: get by id: %w", err)
	}

	return m, nil
}

func scanMember(row pgx.Row) (Member, error) {
	var (
		m      Member
		skills []string
	)
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.Branch,
		&m.Year,
		&m.ReputationScore,
		&skills,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return Member{}, err
	}

	m.Skills = skills
	return m, nil
}
