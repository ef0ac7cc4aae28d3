package domain

import "time"

// ActorType records who drove an audited change.
type ActorType string

const (
	ActorTypeCitizen ActorType = "CITIZEN"
	ActorTypeStaff   ActorType = "STAFF"
	ActorTypeSystem  ActorType = "SYSTEM"
)

// TransitionRecord is an append-only audit entry for one lifecycle change.
// FromStatus is nil only for the birth record written at report creation.
// Records are never mutated or deleted.
type TransitionRecord struct {
	ID         string
	ReportID   string
	FromStatus *ReportStatus
	ToStatus   ReportStatus
	ActorType  ActorType
	ActorID    *string
	Note       string
	CreatedAt  time.Time
}

// DepartmentChange is the append-only audit entry for an admin department
// override. Initial triage assignment is not recorded here; it belongs to
// the report itself.
type DepartmentChange struct {
	ID              string
	ReportID        string
	OldDepartmentID string
	NewDepartmentID string
	ActorID         string
	Reason          string
	CreatedAt       time.Time
}
