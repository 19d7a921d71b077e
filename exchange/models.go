package exchange

import (
	"time"

	"lendloop/listing"
)

// Status is the lifecycle state of a borrow/fulfillment transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Transaction mirrors the transactions table. OwnerID is copied from the
// listing at creation time so authorization checks need no join.
type Transaction struct {
	ID              string
	ListingID       string
	OwnerID         string
	InitiatorID     string
	Status          Status
	ResponseMessage *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Entry is a transaction enriched with the listing direction, the shape the
// dashboard projector consumes.
type Entry struct {
	Transaction
	Direction listing.Direction
}
