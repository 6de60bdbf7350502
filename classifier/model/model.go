// SPDX-License-Identifier: GPL-3.0-or-later
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/CrawX/go-imap-sweeper/domain"
)

// LogisticRegression is a fitted binary linear model; class 1 is spam.
type LogisticRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (m *LogisticRegression) PredictProbability(features FeatureVector) float64 {
	z := m.Intercept
	for idx, x := range features {
		z += m.Coef[idx] * x
	}
	return 1 / (1 + math.Exp(-z))
}

func (m *LogisticRegression) PredictLabel(features FeatureVector) bool {
	return m.PredictProbability(features) >= 0.5
}

// Artifact is the vectorizer and model pair exported by the training pipeline. It is
// read-only once loaded and safe for concurrent use.
type Artifact struct {
	Vectorizer *Vectorizer          `json:"vectorizer"`
	Model      *LogisticRegression `json:"model"`
}

func Load(filename string) (*Artifact, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	artifact := &Artifact{}
	err = json.Unmarshal(raw, artifact)
	if err != nil {
		return nil, fmt.Errorf("could not decode model file: %w", err)
	}

	err = artifact.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid model file: %w", err)
	}

	artifact.Vectorizer.prepare()
	return artifact, nil
}

func (a *Artifact) validate() error {
	if a.Vectorizer == nil || a.Model == nil {
		return fmt.Errorf("vectorizer and model are required")
	}

	if len(a.Vectorizer.Vocabulary) == 0 {
		return fmt.Errorf("vocabulary is empty")
	}

	columns := len(a.Vectorizer.Idf)
	if len(a.Model.Coef) != columns {
		return fmt.Errorf("model has %d coefficients but vectorizer has %d columns", len(a.Model.Coef), columns)
	}

	for term, idx := range a.Vectorizer.Vocabulary {
		if idx < 0 || idx >= columns {
			return fmt.Errorf("vocabulary term %q points to column %d, only %d columns", term, idx, columns)
		}
	}

	if a.Vectorizer.Norm != "" && a.Vectorizer.Norm != "l2" {
		return fmt.Errorf("unsupported norm %q", a.Vectorizer.Norm)
	}

	return nil
}

func (a *Artifact) Score(ctx context.Context, text string) (*domain.SpamResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features := a.Vectorizer.Vectorize(text)
	probability := a.Model.PredictProbability(features)

	return &domain.SpamResult{
		IsSpam:      probability >= 0.5,
		Probability: &probability,
		Score:       probability,
	}, nil
}
