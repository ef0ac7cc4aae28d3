package domain

import "time"

// CommentVisibility differentiates citizen-visible replies from staff notes.
type CommentVisibility string

const (
	CommentVisibilityPublic   CommentVisibility = "PUBLIC"
	CommentVisibilityInternal CommentVisibility = "INTERNAL"
)

// ReportComment captures discussion on a report.
type ReportComment struct {
	ID         string
	ReportID   string
	AuthorType ActorType
	AuthorID   *string
	Visibility CommentVisibility
	Body       string
	CreatedAt  time.Time
}
