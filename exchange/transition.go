package exchange

import (
	"context"
	"fmt"
	"strings"

	"lendloop/listing"
)

// TransitionParams carries one requested status change.
type TransitionParams struct {
	TransactionID   string
	CallerID        string
	Target          Status
	ResponseMessage string
}

// Transition applies one edge of the state machine. The transaction row is
// locked first; when the edge releases the listing, its row is locked too and
// both writes commit together, so a failure of either half leaves both
// records untouched.
//
// Authorization is checked before transition validity: a caller who is
// neither party always gets ErrForbidden, whatever the target status.
func (e *Engine) Transition(ctx context.Context, params TransitionParams) (Transaction, error) {
	if params.TransactionID == "" {
		return Transaction{}, fmt.Errorf("exchange: transaction id required")
	}
	if params.CallerID == "" {
		return Transaction{}, fmt.Errorf("exchange: caller id required")
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("exchange: begin transition: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := e.repo.LockTx(ctx, tx, params.TransactionID)
	if err != nil {
		return Transaction{}, err
	}

	isOwner := current.OwnerID == params.CallerID
	isInitiator := current.InitiatorID == params.CallerID
	if !isOwner && !isInitiator {
		return Transaction{}, ErrForbidden
	}

	r, ok := ruleFor(current.Status, params.Target)
	if ok && !r.permits(isOwner, isInitiator) {
		return Transaction{}, ErrForbidden
	}
	if !ok {
		return Transaction{}, ErrInvalidTransition
	}

	message := strings.TrimSpace(params.ResponseMessage)
	if r.requireMessage && message == "" {
		return Transaction{}, ErrMessageRequired
	}

	var messagePtr *string
	if r.acceptMessage && message != "" {
		messagePtr = &message
	}

	updated, err := e.repo.UpdateStatusTx(ctx, tx, UpdateStatusParams{
		ID:              current.ID,
		Status:          params.Target,
		ResponseMessage: messagePtr,
	})
	if err != nil {
		return Transaction{}, err
	}

	if r.release {
		if _, err := e.inv.LockTx(ctx, tx, current.ListingID); err != nil {
			return Transaction{}, err
		}
		if err := e.inv.SetAvailabilityTx(ctx, tx, current.ListingID, listing.AvailabilityAvailable); err != nil {
			return Transaction{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, fmt.Errorf("exchange: commit transition: %w", err)
	}

	return updated, nil
}
