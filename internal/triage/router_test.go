package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/grievance-service/internal/domain"
)

type staticRules struct {
	departments []domain.Department
	err         error
}

func (s staticRules) ActiveDepartments(context.Context) ([]domain.Department, error) {
	return s.departments, s.err
}

type stubClassifier struct {
	prediction Prediction
	err        error
	calls      int
}

func (s *stubClassifier) Classify(context.Context, string) (Prediction, error) {
	s.calls++
	return s.prediction, s.err
}

func TestRouterUsesPrimaryWhenModelLoaded(t *testing.T) {
	model, err := Train(trainingCorpus())
	require.NoError(t, err)

	fallback := &stubClassifier{}
	router := NewRouter(NewModelBacked(model), fallback)

	prediction, err := router.Triage(context.Background(), "water leak on my street")
	require.NoError(t, err)
	assert.Equal(t, domain.TriageSourceModel, prediction.Source)
	assert.Equal(t, "Water Department", prediction.Label)
	assert.Empty(t, prediction.DepartmentID)
	assert.Greater(t, prediction.Confidence, 0.0)
	assert.Zero(t, fallback.calls)
}

func TestRouterFallsBackWhenModelAbsent(t *testing.T) {
	rules := staticRules{departments: testDepartments()}
	router := NewRouter(NewModelBacked(nil), NewKeywordBacked(rules, false))

	prediction, err := router.Triage(context.Background(), "No water for 3 days")
	require.NoError(t, err)
	assert.Equal(t, domain.TriageSourceKeyword, prediction.Source)
	assert.Equal(t, "dep-2", prediction.DepartmentID)
	assert.Equal(t, "Water Department", prediction.Label)
}

func TestRouterFallbackMatchesDirectKeywordPath(t *testing.T) {
	rules := staticRules{departments: testDepartments()}
	fallback := NewKeywordBacked(rules, false)

	viaRouter := NewRouter(NewModelBacked(nil), fallback)
	for _, text := range []string{
		"No water for 3 days",
		"garbage and trash everywhere",
		"nothing in particular",
	} {
		routed, err := viaRouter.Triage(context.Background(), text)
		require.NoError(t, err)
		direct, err := fallback.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, direct, routed, "input %q", text)
	}
}

func TestRouterSurfacesNonAvailabilityErrors(t *testing.T) {
	boom := errors.New("scoring failed")
	fallback := &stubClassifier{}
	router := NewRouter(&stubClassifier{err: boom}, fallback)

	_, err := router.Triage(context.Background(), "anything")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, fallback.calls, "fallback must not mask real classifier failures")
}

func TestRouterWithNilPrimary(t *testing.T) {
	rules := staticRules{departments: testDepartments()}
	router := NewRouter(nil, NewKeywordBacked(rules, false))

	prediction, err := router.Triage(context.Background(), "pothole on the road")
	require.NoError(t, err)
	assert.Equal(t, "dep-4", prediction.DepartmentID)
}

func TestKeywordBackedPropagatesRuleSourceFailure(t *testing.T) {
	boom := errors.New("rules unavailable")
	fallback := NewKeywordBacked(staticRules{err: boom}, false)

	_, err := fallback.Classify(context.Background(), "water leak")
	assert.ErrorIs(t, err, boom)
}

func TestModelBackedSwap(t *testing.T) {
	classifier := NewModelBacked(nil)
	_, err := classifier.Classify(context.Background(), "water leak")
	assert.ErrorIs(t, err, ErrModelUnavailable)

	model, err := Train(trainingCorpus())
	require.NoError(t, err)
	classifier.Swap(model)

	prediction, err := classifier.Classify(context.Background(), "water leak")
	require.NoError(t, err)
	assert.Equal(t, "Water Department", prediction.Label)

	classifier.Swap(nil)
	_, err = classifier.Classify(context.Background(), "water leak")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
