// Package policy holds the entire authorization surface: a stateless decision
// function over (actor role, action, resource ownership) plus the per-edge
// eligibility table for lifecycle transitions. Nothing here touches storage.
package policy

import (
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/lifecycle"
)

// Action enumerates the guarded operations.
type Action string

const (
	ActionCreateReport     Action = "report:create"
	ActionReadReport       Action = "report:read"
	ActionCommentReport    Action = "report:comment"
	ActionReassignReport   Action = "report:reassign"
	ActionManageReference  Action = "reference:manage"
	ActionProvisionActors  Action = "actors:provision"
	ActionReadInternalNote Action = "report:read_internal"
)

// Resource carries the ownership facts a decision may depend on.
type Resource struct {
	OwnerID string
}

// Can is the access decision function. It is pure: same inputs, same answer.
func Can(actor *domain.Actor, action Action, res Resource) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleOfficer:
		switch action {
		case ActionReadReport, ActionCommentReport, ActionReadInternalNote:
			return true
		}
		return false
	case domain.RoleCitizen:
		switch action {
		case ActionCreateReport:
			return true
		case ActionReadReport, ActionCommentReport:
			return res.OwnerID != "" && res.OwnerID == actor.ID
		}
		return false
	}
	return false
}

// edgeRule describes who may trigger one lifecycle edge.
type edgeRule struct {
	staff        bool
	ownerCitizen bool
	system       bool
}

// edgeRules mirrors the lifecycle table edge for edge. The CREATED ->
// SUBMITTED edge belongs to the system alone; it fires automatically when
// triage completes.
var edgeRules = map[lifecycle.Edge]edgeRule{
	{From: domain.ReportStatusCreated, To: domain.ReportStatusSubmitted}:      {system: true},
	{From: domain.ReportStatusSubmitted, To: domain.ReportStatusUnderReview}:  {staff: true},
	{From: domain.ReportStatusUnderReview, To: domain.ReportStatusInProgress}: {staff: true},
	{From: domain.ReportStatusInProgress, To: domain.ReportStatusResolved}:    {staff: true},
	{From: domain.ReportStatusResolved, To: domain.ReportStatusClosed}:        {staff: true, ownerCitizen: true},
	{From: domain.ReportStatusResolved, To: domain.ReportStatusUnderReview}:   {staff: true},
}

// CanTransition decides whether the actor may trigger the given edge on a
// report owned by ownerID. The edge must already be structurally valid;
// unknown edges are denied for everyone.
func CanTransition(actor *domain.Actor, from, to domain.ReportStatus, ownerID string) bool {
	rule, ok := edgeRules[lifecycle.Edge{From: from, To: to}]
	if !ok {
		return false
	}
	if actor == nil {
		return false
	}
	if rule.staff && actor.IsStaff() {
		return true
	}
	if rule.ownerCitizen && actor.Role == domain.RoleCitizen && actor.ID == ownerID {
		return true
	}
	return false
}

// SystemEdge reports whether the edge may only be triggered automatically.
func SystemEdge(from, to domain.ReportStatus) bool {
	rule, ok := edgeRules[lifecycle.Edge{From: from, To: to}]
	return ok && rule.system && !rule.staff && !rule.ownerCitizen
}

// RegistrationRole is the role provisioned for every self-registered account.
// Callers may not influence it; elevated roles are granted only through admin
// provisioning.
func RegistrationRole() domain.Role {
	return domain.RoleCitizen
}
