package triage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

func trainingCorpus() []Sample {
	return []Sample{
		{"no water supply since yesterday", "Water Department"},
		{"pipeline leak flooding the street", "Water Department"},
		{"dirty drinking water from the tap", "Water Department"},
		{"garbage not collected this week", "Sanitation Department"},
		{"trash piling up near the market", "Sanitation Department"},
		{"waste dump smells terrible", "Sanitation Department"},
		{"huge pothole on the main road", "Roads Department"},
		{"broken footpath outside the school", "Roads Department"},
		{"road surface cracked after rains", "Roads Department"},
	}
}

func TestTrainAndClassify(t *testing.T) {
	model, err := Train(trainingCorpus())
	require.NoError(t, err)
	require.NoError(t, model.Validate())
	assert.Equal(t, []string{"Roads Department", "Sanitation Department", "Water Department"}, model.Labels)
	assert.Equal(t, len(trainingCorpus()), model.Samples)

	cases := []struct {
		text string
		want string
	}{
		{"water leak in my street", "Water Department"},
		{"the tap water looks dirty", "Water Department"},
		{"please collect the garbage", "Sanitation Department"},
		{"a pothole damaged my bike on the road", "Roads Department"},
	}
	for _, tc := range cases {
		label, confidence := model.Classify(tc.text)
		assert.Equal(t, tc.want, label, "text %q", tc.text)
		assert.Greater(t, confidence, 0.0)
		assert.LessOrEqual(t, confidence, 1.0)
	}
}

func TestTrainRejectsEmptyInput(t *testing.T) {
	_, err := Train(nil)
	assert.Error(t, err)

	_, err = Train([]Sample{{Description: "!!!", Department: "Water Department"}})
	assert.Error(t, err)
}

func TestClassifyDeterministic(t *testing.T) {
	model, err := Train(trainingCorpus())
	require.NoError(t, err)

	firstLabel, firstConfidence := model.Classify("water leak on the road")
	for i := 0; i < 20; i++ {
		label, confidence := model.Classify("water leak on the road")
		assert.Equal(t, firstLabel, label)
		assert.Equal(t, firstConfidence, confidence)
	}
}

func TestSaveAndLoadModel(t *testing.T) {
	model, err := Train(trainingCorpus())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "classifier.json")
	require.NoError(t, SaveModel(model, path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	label, _ := model.Classify("pipeline leak near the park")
	loadedLabel, _ := loaded.Classify("pipeline leak near the park")
	assert.Equal(t, label, loadedLabel)
	assert.Equal(t, model.Labels, loaded.Labels)
}

func TestLoadModelMissingFileIsNotAnError(t *testing.T) {
	model, err := LoadModel(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.NoError(t, err)
	assert.Nil(t, model)

	model, err = LoadModel("")
	assert.NoError(t, err)
	assert.Nil(t, model)
}

func TestLoadModelCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	model, err := LoadModel(path)
	assert.Nil(t, model)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "MODEL_CONFIG", domainErr.Code)
}

func TestLoadModelInconsistentArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier.json")
	// Parses fine but the weight matrix does not match the label count.
	artifact := `{
        "vectorizer": {"vocabulary": {"water": 0}, "idf": [1.0]},
        "labels": ["A", "B"],
        "bias": [0.1],
        "weights": [[0.5]]
    }`
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o644))

	model, err := LoadModel(path)
	assert.Nil(t, model)
	require.Error(t, err)
	assert.Equal(t, "MODEL_CONFIG", apperrors.ToDomainError(err).Code)
}
