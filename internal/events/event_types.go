package events

import (
	"time"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated           EventType = "report_created"
	EventReportStatusChanged     EventType = "report_status_changed"
	EventReportDepartmentChanged EventType = "report_department_changed"
	EventReportCommentAdded      EventType = "report_comment_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.ActorType `json:"type"`
	ActorID *string          `json:"actor_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	DepartmentID string                `json:"department_id"`
	Priority     domain.ReportPriority `json:"priority"`
	Title        string                `json:"title"`
	TriageSource domain.TriageSource   `json:"triage_source"`
	Confidence   *float64              `json:"confidence,omitempty"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
	Note      string              `json:"note,omitempty"`
}

// ReportDepartmentChangedPayload payload.
type ReportDepartmentChangedPayload struct {
	OldDepartmentID string `json:"old_department_id"`
	NewDepartmentID string `json:"new_department_id"`
	Reason          string `json:"reason,omitempty"`
}

// ReportCommentAddedPayload payload.
type ReportCommentAddedPayload struct {
	CommentID   string                   `json:"comment_id"`
	Visibility  domain.CommentVisibility `json:"visibility"`
	AuthorType  domain.ActorType         `json:"author_type"`
	AuthorID    *string                  `json:"author_id,omitempty"`
	BodyPreview string                   `json:"body_preview"`
}
