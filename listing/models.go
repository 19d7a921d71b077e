package listing

import "time"

// Direction tells which side of the exchange the listing owner is on.
type Direction string

const (
	// DirectionGive means the owner is lending the component out.
	DirectionGive Direction = "give"
	// DirectionTake means the owner is asking someone to lend it to them.
	DirectionTake Direction = "take"
)

// Availability is the reservation flag on a listing. A listing is reserved
// exactly while one open (pending or active) exchange targets it.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityReserved  Availability = "reserved"
)

// Condition describes the physical state of the listed component.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionUsed    Condition = "used"
	ConditionDamaged Condition = "damaged"
)

// Listing mirrors the listings table. Content fields (title, description,
// category, condition) are carried for presentation; the reservation engine
// only reads OwnerID, Direction and Availability.
type Listing struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	Category     string
	Condition    Condition
	Direction    Direction
	Availability Availability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams enumerates the required fields to insert a new listing.
type CreateParams struct {
	OwnerID     string
	Title       string
	Description string
	Category    string
	Condition   Condition
	Direction   Direction
}
