package types

import "time"

// Membership is one edge of the ad hoc team membership relation. A team and
// an author are connected by at most one edge.
type Membership struct {
	ID          string    `json:"id"`
	TeamEmail   string    `json:"team_email"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
}
