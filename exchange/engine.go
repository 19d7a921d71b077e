package exchange

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lendloop/listing"
)

var (
	// ErrNotFound signals the referenced transaction does not exist.
	ErrNotFound = errors.New("exchange: transaction not found")
	// ErrListingReserved signals the listing already has an open transaction.
	ErrListingReserved = errors.New("exchange: listing already reserved")
	// ErrOwnListing signals a member tried to transact with their own listing.
	ErrOwnListing = errors.New("exchange: cannot transact with own listing")
	// ErrForbidden signals the caller may not invoke the requested transition.
	ErrForbidden = errors.New("exchange: forbidden")
	// ErrInvalidTransition signals the target status is not reachable from the
	// current one.
	ErrInvalidTransition = errors.New("exchange: invalid transition")
	// ErrMessageRequired signals an accept without the mandatory response message.
	ErrMessageRequired = errors.New("exchange: response message required")
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Inventory is the listing-side access the engine needs. Both methods run
// inside the engine's transaction; LockTx serializes all reservation work on
// a listing.
type Inventory interface {
	LockTx(ctx context.Context, tx pgx.Tx, id string) (listing.Listing, error)
	SetAvailabilityTx(ctx context.Context, tx pgx.Tx, id string, availability listing.Availability) error
}

// Repository defines the transaction-row data access required by the engine.
type Repository interface {
	InsertTx(ctx context.Context, tx pgx.Tx, params InsertParams) (Transaction, error)
	LockTx(ctx context.Context, tx pgx.Tx, id string) (Transaction, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, params UpdateStatusParams) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	ListForViewer(ctx context.Context, viewerID string) ([]Entry, error)
}

// Engine admits new borrow requests and drives the transaction state
// machine, keeping listing availability consistent with transaction status.
type Engine struct {
	pool TxBeginner
	repo Repository
	inv  Inventory
}

// NewEngine builds an Engine over the given pool and collaborators.
func NewEngine(pool TxBeginner, repo Repository, inv Inventory) *Engine {
	return &Engine{
		pool: pool,
		repo: repo,
		inv:  inv,
	}
}

// GetByID returns a single transaction.
func (e *Engine) GetByID(ctx context.Context, id string) (Transaction, error) {
	return e.repo.GetByID(ctx, id)
}

// ListForViewer returns every transaction the viewer participates in, newest
// first, each carrying the listing direction for dashboard classification.
func (e *Engine) ListForViewer(ctx context.Context, viewerID string) ([]Entry, error) {
	return e.repo.ListForViewer(ctx, viewerID)
}
