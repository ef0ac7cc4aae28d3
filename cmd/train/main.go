package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/triage"
)

// Trains the grievance classifier from a labeled CSV and writes the model
// artifact the API loads at startup. Each row is: description,department.
func main() {
	_ = godotenv.Load()

	inputPath := flag.String("input", "data/training.csv", "labeled CSV with description,department rows")
	outputPath := flag.String("output", envOr("TRIAGE_MODEL_PATH", "model/classifier.json"), "model artifact destination")
	hasHeader := flag.Bool("header", true, "skip the first CSV row")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	samples, err := readSamples(*inputPath, *hasHeader)
	if err != nil {
		logger.Fatal("read training data", zap.String("path", *inputPath), zap.Error(err))
	}
	if len(samples) == 0 {
		logger.Fatal("no training samples", zap.String("path", *inputPath))
	}

	model, err := triage.Train(samples)
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	if err := triage.SaveModel(model, *outputPath); err != nil {
		logger.Fatal("write model artifact", zap.String("path", *outputPath), zap.Error(err))
	}

	logger.Info("model trained",
		zap.String("output", *outputPath),
		zap.Int("samples", len(samples)),
		zap.Int("labels", len(model.Labels)),
		zap.Int("vocabulary", len(model.Vectorizer.Vocabulary)),
	)
}

func readSamples(path string, hasHeader bool) ([]triage.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var samples []triage.Sample
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first && hasHeader {
			first = false
			continue
		}
		first = false

		description := strings.TrimSpace(record[0])
		department := strings.TrimSpace(record[1])
		if description == "" || department == "" {
			continue
		}
		samples = append(samples, triage.Sample{Description: description, Department: department})
	}
	return samples, nil
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
