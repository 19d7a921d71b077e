package member

import "time"

// Member is the domain representation of a registered member.
// It mirrors the members table and carries no JSON annotations so it can be
// reused by different presentation layers.
type Member struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    string
	Branch          string
	Year            int
	ReputationScore int
	Skills          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RegisterRequest contains member registration data supplied by callers.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	Branch   string   `json:"branch"`
	Year     int      `json:"year"`
	Skills   []string `json:"skills"`
}

// LoginRequest contains member login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
