package triage

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

// Model is the trained classification artifact: a shared vocabulary plus one
// linear decision function per department label. Immutable after load; safe
// for concurrent use without synchronization.
type Model struct {
	Vectorizer Vectorizer  `json:"vectorizer"`
	Labels     []string    `json:"labels"`
	Bias       []float64   `json:"bias"`
	Weights    [][]float64 `json:"weights"`
	TrainedAt  time.Time   `json:"trained_at"`
	Samples    int         `json:"samples"`
}

// Validate checks structural consistency of the artifact. A mismatch is a
// configuration error at load time, never a per-call error.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return fmt.Errorf("model has no labels")
	}
	if len(m.Bias) != len(m.Labels) || len(m.Weights) != len(m.Labels) {
		return fmt.Errorf("model has %d labels but %d biases and %d weight rows",
			len(m.Labels), len(m.Bias), len(m.Weights))
	}
	dim := m.Vectorizer.Dimension()
	if len(m.Vectorizer.Vocabulary) != dim {
		return fmt.Errorf("vocabulary size %d does not match idf length %d",
			len(m.Vectorizer.Vocabulary), dim)
	}
	for i, row := range m.Weights {
		if len(row) != dim {
			return fmt.Errorf("weight row %d has dimension %d, want %d", i, len(row), dim)
		}
	}
	return nil
}

// Classify scores the text against every label and returns the winner with
// its normalized confidence.
func (m *Model) Classify(text string) (string, float64) {
	vec := m.Vectorizer.Vectorize(text)
	scores := make([]float64, len(m.Labels))
	for i := range m.Labels {
		score := m.Bias[i]
		for j, x := range vec {
			if x != 0 {
				score += m.Weights[i][j] * x
			}
		}
		scores[i] = score
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.Labels[best], softmax(scores, best)
}

// softmax returns the normalized probability of scores[target], shifted by
// the maximum for numerical stability.
func softmax(scores []float64, target int) float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - max)
	}
	return math.Exp(scores[target]-max) / sum
}

// LoadModel reads the artifact from disk. A missing file is not an error: it
// returns (nil, nil) and the service runs on the keyword fallback. A file
// that exists but does not parse or validate is a fatal configuration error.
func LoadModel(path string) (*Model, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewModelConfigError("unable to read model artifact", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, apperrors.NewModelConfigError("model artifact is corrupt", err)
	}
	if err := model.Validate(); err != nil {
		return nil, apperrors.NewModelConfigError("model artifact failed validation", err)
	}
	return &model, nil
}

// SaveModel writes the artifact to disk, creating the parent directory if
// needed.
func SaveModel(model *Model, path string) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
