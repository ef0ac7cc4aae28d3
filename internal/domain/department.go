package domain

import "time"

// Department represents a responsible organizational unit. Keywords are the
// trigger terms consulted by the fallback matcher; exactly one active
// department carries IsDefault and acts as the catch-all triage target.
type Department struct {
	ID          string
	Name        string
	Description string
	Keywords    []string
	IsDefault   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
