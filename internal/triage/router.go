package triage

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// ErrModelUnavailable signals that no trained artifact is loaded. It is an
// expected state, not a failure; the router answers it with the fallback.
var ErrModelUnavailable = errors.New("no trained model available")

// Prediction is the outcome of a classification attempt. DepartmentID is
// empty for model predictions, which carry only the trained label; the
// caller resolves the label against reference data.
type Prediction struct {
	Label        string
	DepartmentID string
	Confidence   float64
	Source       domain.TriageSource
}

// Classifier assigns a department to free text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// ModelBacked classifies with the trained artifact. The handle is swapped
// atomically when a retrained model is adopted; each call reads one
// consistent snapshot.
type ModelBacked struct {
	handle atomic.Pointer[Model]
}

// NewModelBacked wraps a loaded model. A nil model is valid and yields
// ErrModelUnavailable until Swap installs one.
func NewModelBacked(model *Model) *ModelBacked {
	c := &ModelBacked{}
	if model != nil {
		c.handle.Store(model)
	}
	return c
}

// Swap atomically replaces the model handle.
func (c *ModelBacked) Swap(model *Model) {
	if model == nil {
		c.handle.Store(nil)
		return
	}
	c.handle.Store(model)
}

// Classify applies the linear decision functions of the loaded artifact.
func (c *ModelBacked) Classify(_ context.Context, text string) (Prediction, error) {
	model := c.handle.Load()
	if model == nil {
		return Prediction{}, ErrModelUnavailable
	}
	label, confidence := model.Classify(text)
	return Prediction{
		Label:      label,
		Confidence: confidence,
		Source:     domain.TriageSourceModel,
	}, nil
}

// RuleSource supplies the active departments with their keyword triggers.
type RuleSource interface {
	ActiveDepartments(ctx context.Context) ([]domain.Department, error)
}

// KeywordBacked classifies with the deterministic keyword matcher.
type KeywordBacked struct {
	rules      RuleSource
	wholeWords bool
}

// NewKeywordBacked builds the fallback classifier.
func NewKeywordBacked(rules RuleSource, wholeWords bool) *KeywordBacked {
	return &KeywordBacked{rules: rules, wholeWords: wholeWords}
}

// Classify matches keyword triggers; it only errors if the department rules
// cannot be read at all.
func (c *KeywordBacked) Classify(ctx context.Context, text string) (Prediction, error) {
	departments, err := c.rules.ActiveDepartments(ctx)
	if err != nil {
		return Prediction{}, err
	}
	result := NewKeywordMatcher(departments, c.wholeWords).Match(text)
	return Prediction{
		Label:        result.DepartmentName,
		DepartmentID: result.DepartmentID,
		Source:       domain.TriageSourceKeyword,
	}, nil
}

// Router orchestrates the two classification paths. It does no text
// processing of its own.
type Router struct {
	primary  Classifier
	fallback Classifier
}

// NewRouter wires the primary (model-backed) and fallback (keyword-backed)
// classifiers. Either may be substituted with a stand-in in tests.
func NewRouter(primary, fallback Classifier) *Router {
	return &Router{primary: primary, fallback: fallback}
}

// Triage attempts the primary classifier and delegates to the fallback when
// the model is unavailable. Model absence never surfaces as an error.
func (r *Router) Triage(ctx context.Context, text string) (Prediction, error) {
	if r.primary != nil {
		prediction, err := r.primary.Classify(ctx, text)
		if err == nil {
			return prediction, nil
		}
		if !errors.Is(err, ErrModelUnavailable) {
			return Prediction{}, err
		}
	}
	return r.fallback.Classify(ctx, text)
}
