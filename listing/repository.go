package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested listing does not exist.
	ErrNotFound = errors.New("listing: not found")
	// ErrInvalidDirection signals an unknown listing direction.
	ErrInvalidDirection = errors.New("listing: invalid direction")
)

const listingColumns = `id, owner_id, title, description, category, condition, direction::text, availability::text, created_at, updated_at`

// PGRepository is the PostgreSQL-backed inventory store. Pool methods are
// self-contained; the *Tx methods participate in a caller-owned transaction
// so availability writes commit together with exchange-status writes.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new listing, available by default.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Listing, error) {
	if params.OwnerID == "" {
		return Listing{}, fmt.Errorf("listing: owner id required")
	}
	if params.Title == "" {
		return Listing{}, fmt.Errorf("listing: title required")
	}
	if params.Direction != DirectionGive && params.Direction != DirectionTake {
		return Listing{}, ErrInvalidDirection
	}

	query := `
		INSERT INTO listings (owner_id, title, description, category, condition, direction)
		VALUES ($1, $2, $3, $4, $5, $6::listing_direction)
		RETURNING ` + listingColumns

	l, err := scanListing(r.pool.QueryRow(ctx, query,
		params.OwnerID,
		params.Title,
		params.Description,
		params.Category,
		params.Condition,
		params.Direction,
	))
	if err != nil {
		return Listing{}, fmt.Errorf("listing: create: %w", err)
	}
	return l, nil
}

// GetByID fetches a listing by its primary key.
func (r *PGRepository) GetByID(ctx context.Context, id string) (Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: get by id: %w", err)
	}
	return l, nil
}

// List fetches up to limit listings, newest first.
func (r *PGRepository) List(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing: list: %w", err)
	}
	defer rows.Close()

	listings := make([]Listing, 0, limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("listing: scan: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing: iterate: %w", err)
	}

	return listings, nil
}

// SetAvailability updates the availability flag outside any caller
// transaction. The reservation engine does not use this path; it exists for
// administrative correction and for the inventory-store contract.
func (r *PGRepository) SetAvailability(ctx context.Context, id string, availability Availability) (Listing, error) {
	query := `
		UPDATE listings
		SET availability = $2::listing_availability,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + listingColumns

	l, err := scanListing(r.pool.QueryRow(ctx, query, id, availability))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: set availability: %w", err)
	}
	return l, nil
}

// LockTx loads a listing with a row lock, serializing concurrent admission
// and transition work on the same listing for the life of the caller's
// transaction.
func (r *PGRepository) LockTx(ctx context.Context, tx pgx.Tx, id string) (Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`

	l, err := scanListing(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: lock: %w", err)
	}
	return l, nil
}

// SetAvailabilityTx flips the availability flag inside the caller's
// transaction. The caller must already hold the row lock via LockTx.
func (r *PGRepository) SetAvailabilityTx(ctx context.Context, tx pgx.Tx, id string, availability Availability) error {
	tag, err := tx.Exec(ctx, `
		UPDATE listings
		SET availability = $2::listing_availability,
		    updated_at = now()
		WHERE id = $1
	`, id, availability)
	if err != nil {
		return fmt.Errorf("listing: set availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Title,
		&l.Description,
		&l.Category,
		&l.Condition,
		&l.Direction,
		&l.Availability,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return Listing{}, err
	}
	return l, nil
}
