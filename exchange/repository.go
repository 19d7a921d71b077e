package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, listing_id, owner_id, initiator_id, status::text, response_message, created_at, updated_at`

// InsertParams enumerates the fields required to admit a new transaction.
type InsertParams struct {
	ListingID   string
	OwnerID     string
	InitiatorID string
}

// UpdateStatusParams carries one status write. A nil ResponseMessage keeps
// the stored message; a non-nil one replaces it.
type UpdateStatusParams struct {
	ID              string
	Status          Status
	ResponseMessage *string
}

// PGRepository implements Repository backed by PostgreSQL. The *Tx methods
// participate in the engine's transaction.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertTx creates a pending transaction inside the caller's transaction.
// The partial unique index on open transactions turns a lost race into
// ErrListingReserved instead of a double booking.
func (r *PGRepository) InsertTx(ctx context.Context, tx pgx.Tx, params InsertParams) (Transaction, error) {
	query := `
		INSERT INTO transactions (id, listing_id, owner_id, initiator_id, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING ` + transactionColumns

	txn, err := scanTransaction(tx.QueryRow(ctx, query, uuid.NewString(), params.ListingID, params.OwnerID, params.InitiatorID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Transaction{}, ErrListingReserved
		}
		return Transaction{}, fmt.Errorf("exchange: insert: %w", err)
	}
	return txn, nil
}

// LockTx loads a transaction with a row lock so concurrent transitions on
// the same transaction serialize.
func (r *PGRepository) LockTx(ctx context.Context, tx pgx.Tx, id string) (Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	txn, err := scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, fmt.Errorf("exchange: lock: %w", err)
	}
	return txn, nil
}

// UpdateStatusTx writes the new status inside the caller's transaction.
func (r *PGRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, params UpdateStatusParams) (Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2::transaction_status,
		    response_message = COALESCE($3::text, response_message),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + transactionColumns

	txn, err := scanTransaction(tx.QueryRow(ctx, query, params.ID, params.Status, params.ResponseMessage))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, fmt.Errorf("exchange: update status: %w", err)
	}
	return txn, nil
}

// GetByID fetches a transaction without locking it.
func (r *PGRepository) GetByID(ctx context.Context, id string) (Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, fmt.Errorf("exchange: get by id: %w", err)
	}
	return txn, nil
}

// ListForViewer returns every transaction the viewer is a party to, newest
// first, joined with the listing for its direction.
func (r *PGRepository) ListForViewer(ctx context.Context, viewerID string) ([]Entry, error) {
	const query = `
		SELECT t.id, t.listing_id, t.owner_id, t.initiator_id, t.status::text, t.response_message, t.created_at, t.updated_at,
		       l.direction::text
		FROM transactions t
		JOIN listings l ON l.id = t.listing_id
		WHERE t.owner_id = $1 OR t.initiator_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("exchange: list for viewer: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, 8)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.ListingID,
			&e.OwnerID,
			&e.InitiatorID,
			&e.Status,
			&e.ResponseMessage,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.Direction,
		); err != nil {
			return nil, fmt.Errorf("exchange: scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exchange: iterate entries: %w", err)
	}

	return entries, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var txn Transaction
	err := row.Scan(
		&txn.ID,
		&txn.ListingID,
		&txn.OwnerID,
		&txn.InitiatorID,
		&txn.Status,
		&txn.ResponseMessage,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return Transaction{}, err
	}
	return txn, nil
}
