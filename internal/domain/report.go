package domain

import "time"

// ReportStatus enumerates lifecycle states for grievance reports.
type ReportStatus string

const (
	ReportStatusCreated     ReportStatus = "CREATED"
	ReportStatusSubmitted   ReportStatus = "SUBMITTED"
	ReportStatusUnderReview ReportStatus = "UNDER_REVIEW"
	ReportStatusInProgress  ReportStatus = "IN_PROGRESS"
	ReportStatusResolved    ReportStatus = "RESOLVED"
	ReportStatusClosed      ReportStatus = "CLOSED"
)

// AllStatuses lists every lifecycle state in intended progression order.
func AllStatuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusCreated,
		ReportStatusSubmitted,
		ReportStatusUnderReview,
		ReportStatusInProgress,
		ReportStatusResolved,
		ReportStatusClosed,
	}
}

// ReportPriority enumerates submitter-declared urgency.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "LOW"
	ReportPriorityMedium ReportPriority = "MEDIUM"
	ReportPriorityHigh   ReportPriority = "HIGH"
	ReportPriorityUrgent ReportPriority = "URGENT"
)

// TriageSource records which classification path assigned the department.
type TriageSource string

const (
	TriageSourceModel   TriageSource = "MODEL"
	TriageSourceKeyword TriageSource = "KEYWORD"
)

// Report is the aggregate for citizen grievances. DepartmentID is set once
// by triage at creation; only the audited admin override may change it.
type Report struct {
	ID               string
	ExternalKey      string
	SubmitterID      string
	DepartmentID     string
	Title            string
	Description      string
	Location         string
	Status           ReportStatus
	Priority         ReportPriority
	TriageSource     TriageSource
	TriageConfidence *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ClosedAt         *time.Time
}
