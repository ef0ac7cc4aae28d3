package lifecycle

import (
	"github.com/spec-kit/grievance-service/internal/domain"
)

// Edge identifies one directed transition in the lifecycle graph.
type Edge struct {
	From domain.ReportStatus
	To   domain.ReportStatus
}

// allowedTransitions is the complete lifecycle graph. CLOSED is terminal and
// deliberately absent; RESOLVED -> UNDER_REVIEW is the reopen path.
var allowedTransitions = map[domain.ReportStatus][]domain.ReportStatus{
	domain.ReportStatusCreated:     {domain.ReportStatusSubmitted},
	domain.ReportStatusSubmitted:   {domain.ReportStatusUnderReview},
	domain.ReportStatusUnderReview: {domain.ReportStatusInProgress},
	domain.ReportStatusInProgress:  {domain.ReportStatusResolved},
	domain.ReportStatusResolved:    {domain.ReportStatusClosed, domain.ReportStatusUnderReview},
}

// IsValidTransition reports whether the edge exists in the lifecycle graph,
// independent of who is asking.
func IsValidTransition(from, to domain.ReportStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// TransitionsFrom returns the outgoing edges of a status. CLOSED returns nil.
func TransitionsFrom(from domain.ReportStatus) []domain.ReportStatus {
	out := make([]domain.ReportStatus, len(allowedTransitions[from]))
	copy(out, allowedTransitions[from])
	return out
}

// IsTerminal reports whether a status has no outgoing edges.
func IsTerminal(status domain.ReportStatus) bool {
	return len(allowedTransitions[status]) == 0
}

// Edges returns every edge in the graph in stable order.
func Edges() []Edge {
	var edges []Edge
	for _, from := range domain.AllStatuses() {
		for _, to := range allowedTransitions[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}
