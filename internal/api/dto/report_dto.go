package dto

import (
	"time"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// CreateReportRequest payload for report submission.
type CreateReportRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	Priority    domain.ReportPriority `json:"priority"`
}

// TransitionRequest payload for lifecycle transitions.
type TransitionRequest struct {
	Target domain.ReportStatus `json:"target"`
	Note   string              `json:"note"`
}

// ReassignRequest payload for the admin department override.
type ReassignRequest struct {
	DepartmentID string `json:"department_id"`
	Reason       string `json:"reason"`
}

// CreateCommentRequest payload for comments.
type CreateCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

// ReportSummary is the list representation of a report.
type ReportSummary struct {
	ID               string                `json:"id"`
	ExternalKey      string                `json:"external_key"`
	DepartmentID     string                `json:"department_id"`
	Title            string                `json:"title"`
	Location         string                `json:"location,omitempty"`
	Status           domain.ReportStatus   `json:"status"`
	Priority         domain.ReportPriority `json:"priority"`
	TriageSource     domain.TriageSource   `json:"triage_source"`
	TriageConfidence *float64              `json:"triage_confidence,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// CommentResponse is one thread entry.
type CommentResponse struct {
	ID         string                   `json:"id"`
	AuthorType domain.ActorType         `json:"author_type"`
	AuthorID   *string                  `json:"author_id,omitempty"`
	Visibility domain.CommentVisibility `json:"visibility"`
	Body       string                   `json:"body"`
	CreatedAt  time.Time                `json:"created_at"`
}

// TransitionRecordResponse is one audit trail entry.
type TransitionRecordResponse struct {
	ID         string               `json:"id"`
	FromStatus *domain.ReportStatus `json:"from_status,omitempty"`
	ToStatus   domain.ReportStatus  `json:"to_status"`
	ActorType  domain.ActorType     `json:"actor_type"`
	ActorID    *string              `json:"actor_id,omitempty"`
	Note       string               `json:"note,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// DepartmentChangeResponse is one override audit entry.
type DepartmentChangeResponse struct {
	ID              string    `json:"id"`
	OldDepartmentID string    `json:"old_department_id"`
	NewDepartmentID string    `json:"new_department_id"`
	ActorID         string    `json:"actor_id"`
	Reason          string    `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReportDetailResponse is the full report view.
type ReportDetailResponse struct {
	ReportSummary
	Description string            `json:"description"`
	SubmitterID string            `json:"submitter_id"`
	ClosedAt    *time.Time        `json:"closed_at,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}
