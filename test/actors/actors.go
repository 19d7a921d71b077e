package actors

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendloop/exchange"
)

// Requester hammers CreateRequest against one listing. Losing the race is
// the expected outcome most of the time; any other error is treated as
// contention noise and retried, the oracles catch real corruption.
func Requester(ctx context.Context, eng *exchange.Engine, listingID, memberID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		_, _ = eng.CreateRequest(ctx, listingID, memberID)
		time.Sleep(time.Duration(10+rand.Intn(20)) * time.Millisecond)
	}
}

// Responder plays the listing owner: it finds the open transaction on its
// listing and randomly accepts, rejects, completes or cancels it.
func Responder(ctx context.Context, pool *pgxpool.Pool, eng *exchange.Engine, listingID, ownerID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		id, status, err := openTransaction(ctx, pool, listingID)
		if err == nil && id != "" {
			var target exchange.Status
			var message string
			switch exchange.Status(status) {
			case exchange.StatusPending:
				if rand.Intn(2) == 0 {
					target, message = exchange.StatusActive, "pickup at the lab bench"
				} else {
					target, message = exchange.StatusRejected, "not this week"
				}
			case exchange.StatusActive:
				if rand.Intn(2) == 0 {
					target = exchange.StatusCompleted
				} else {
					target = exchange.StatusCancelled
				}
			}
			if target != "" {
				// Lost races surface as invalid transitions; that is fine.
				_, _ = eng.Transition(ctx, exchange.TransitionParams{
					TransactionID:   id,
					CallerID:        ownerID,
					Target:          target,
					ResponseMessage: message,
				})
			}
		}
		time.Sleep(time.Duration(20+rand.Intn(40)) * time.Millisecond)
	}
}

// Canceller plays a borrower who occasionally backs out of their own open
// transaction.
func Canceller(ctx context.Context, pool *pgxpool.Pool, eng *exchange.Engine, memberID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		if rand.Intn(3) == 0 {
			var id string
			err := pool.QueryRow(ctx, `
				SELECT id FROM transactions
				WHERE initiator_id = $1 AND status IN ('pending', 'active')
				LIMIT 1
			`, memberID).Scan(&id)
			if err == nil {
				_, _ = eng.Transition(ctx, exchange.TransitionParams{
					TransactionID: id,
					CallerID:      memberID,
					Target:        exchange.StatusCancelled,
				})
			}
		}
		time.Sleep(time.Duration(30+rand.Intn(50)) * time.Millisecond)
	}
}

func openTransaction(ctx context.Context, pool *pgxpool.Pool, listingID string) (string, string, error) {
	var id, status string
	err := pool.QueryRow(ctx, `
		SELECT id, status::text FROM transactions
		WHERE listing_id = $1 AND status IN ('pending', 'active')
		LIMIT 1
	`, listingID).Scan(&id, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return id, status, nil
}
