package exchange

import (
	"context"
	"fmt"

	"lendloop/listing"
)

// CreateRequest admits a new borrow request against a listing. The whole
// admission step runs under the listing's row lock so concurrent requests
// for the same listing serialize: exactly one observes an available listing,
// creates the pending transaction, and flips the listing to reserved. The
// partial unique index on open transactions backs the same guarantee at the
// schema level.
func (e *Engine) CreateRequest(ctx context.Context, listingID, initiatorID string) (Transaction, error) {
	if listingID == "" {
		return Transaction{}, fmt.Errorf("exchange: listing id required")
	}
	if initiatorID == "" {
		return Transaction{}, fmt.Errorf("exchange: initiator id required")
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("exchange: begin admission: %w", err)
	}
	defer tx.Rollback(ctx)

	l, err := e.inv.LockTx(ctx, tx, listingID)
	if err != nil {
		return Transaction{}, err
	}
	if l.Availability != listing.AvailabilityAvailable {
		return Transaction{}, ErrListingReserved
	}
	if l.OwnerID == initiatorID {
		return Transaction{}, ErrOwnListing
	}

	created, err := e.repo.InsertTx(ctx, tx, InsertParams{
		ListingID:   l.ID,
		OwnerID:     l.OwnerID,
		InitiatorID: initiatorID,
	})
	if err != nil {
		return Transaction{}, err
	}

	if err := e.inv.SetAvailabilityTx(ctx, tx, l.ID, listing.AvailabilityReserved); err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, fmt.Errorf("exchange: commit admission: %w", err)
	}

	return created, nil
}
