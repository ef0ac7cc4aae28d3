package domain

import "time"

// Role is the closed set of actor roles. Authorization keys off this enum;
// no other role values exist in the system.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// ValidRole reports whether the value is a member of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// ActorStatus represents account lifecycle states.
type ActorStatus string

const (
	ActorStatusActive    ActorStatus = "ACTIVE"
	ActorStatusSuspended ActorStatus = "SUSPENDED"
)

// Actor is any authenticated principal: citizens who submit reports and the
// officers/admins who work them.
type Actor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       ActorStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Owns reports whether the actor submitted the given report.
func (a *Actor) Owns(report *Report) bool {
	return a != nil && report != nil && a.ID == report.SubmitterID
}

// IsStaff reports whether the actor holds an operator role.
func (a *Actor) IsStaff() bool {
	return a != nil && (a.Role == RoleOfficer || a.Role == RoleAdmin)
}
