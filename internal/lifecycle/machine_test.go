package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/grievance-service/internal/domain"
)

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  domain.ReportStatus
		to    domain.ReportStatus
		valid bool
	}{
		{"created to submitted", domain.ReportStatusCreated, domain.ReportStatusSubmitted, true},
		{"submitted to under review", domain.ReportStatusSubmitted, domain.ReportStatusUnderReview, true},
		{"under review to in progress", domain.ReportStatusUnderReview, domain.ReportStatusInProgress, true},
		{"in progress to resolved", domain.ReportStatusInProgress, domain.ReportStatusResolved, true},
		{"resolved to closed", domain.ReportStatusResolved, domain.ReportStatusClosed, true},
		{"reopen resolved to under review", domain.ReportStatusResolved, domain.ReportStatusUnderReview, true},

		{"no skipping ahead", domain.ReportStatusSubmitted, domain.ReportStatusResolved, false},
		{"no going backwards", domain.ReportStatusInProgress, domain.ReportStatusUnderReview, false},
		{"no direct close", domain.ReportStatusInProgress, domain.ReportStatusClosed, false},
		{"closed is terminal", domain.ReportStatusClosed, domain.ReportStatusUnderReview, false},
		{"no self loop", domain.ReportStatusUnderReview, domain.ReportStatusUnderReview, false},
		{"unknown status", domain.ReportStatus("ARCHIVED"), domain.ReportStatusClosed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range domain.AllStatuses() {
		if status == domain.ReportStatusClosed {
			assert.True(t, IsTerminal(status))
			continue
		}
		assert.False(t, IsTerminal(status), "status %s should have outgoing edges", status)
	}
}

func TestTransitionsFrom(t *testing.T) {
	resolved := TransitionsFrom(domain.ReportStatusResolved)
	assert.ElementsMatch(t,
		[]domain.ReportStatus{domain.ReportStatusClosed, domain.ReportStatusUnderReview},
		resolved,
	)
	assert.Empty(t, TransitionsFrom(domain.ReportStatusClosed))

	// Mutating the returned slice must not leak into the graph.
	submitted := TransitionsFrom(domain.ReportStatusSubmitted)
	require.Len(t, submitted, 1)
	submitted[0] = domain.ReportStatusClosed
	assert.True(t, IsValidTransition(domain.ReportStatusSubmitted, domain.ReportStatusUnderReview))
	assert.False(t, IsValidTransition(domain.ReportStatusSubmitted, domain.ReportStatusClosed))
}

func TestEdgesCoversEveryTransition(t *testing.T) {
	edges := Edges()
	require.Len(t, edges, 6)
	for _, edge := range edges {
		assert.True(t, IsValidTransition(edge.From, edge.To))
	}
}
