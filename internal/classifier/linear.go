package classifier

import (
	"fmt"
	"math"
)

// LinearModel is a logistic regression classifier. With one coefficient row
// and two classes it is binary (sigmoid); otherwise it is multinomial (softmax).
type LinearModel struct {
	ClassLabels []string    `yaml:"classes"`
	Coef        [][]float64 `yaml:"coef"`
	Intercept   []float64   `yaml:"intercept"`
}

// Classes implements Model
func (m *LinearModel) Classes() []string {
	return m.ClassLabels
}

// Dim returns the number of features the model expects
func (m *LinearModel) Dim() int {
	if len(m.Coef) == 0 {
		return 0
	}
	return len(m.Coef[0])
}

func (m *LinearModel) binary() bool {
	return len(m.Coef) == 1 && len(m.ClassLabels) == 2
}

// Validate checks that the coefficient shapes are consistent
func (m *LinearModel) Validate() error {
	if len(m.ClassLabels) < 2 {
		return fmt.Errorf("model needs at least 2 classes, got %d", len(m.ClassLabels))
	}
	if !m.binary() && len(m.Coef) != len(m.ClassLabels) {
		return fmt.Errorf("coef has %d rows for %d classes", len(m.Coef), len(m.ClassLabels))
	}
	if len(m.Intercept) != len(m.Coef) {
		return fmt.Errorf("intercept has %d entries for %d coef rows", len(m.Intercept), len(m.Coef))
	}
	dim := m.Dim()
	for i, row := range m.Coef {
		if len(row) != dim {
			return fmt.Errorf("coef row %d has %d features, want %d", i, len(row), dim)
		}
		for j, v := range row {
			if !finite(v) {
				return fmt.Errorf("coef[%d][%d] is not finite: %v", i, j, v)
			}
		}
	}
	for i, v := range m.Intercept {
		if !finite(v) {
			return fmt.Errorf("intercept[%d] is not finite: %v", i, v)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (m *LinearModel) decision(x Vector) ([]float64, error) {
	dim := m.Dim()
	z := make([]float64, len(m.Coef))
	for i, row := range m.Coef {
		z[i] = m.Intercept[i]
		for idx, val := range x {
			if idx < 0 || idx >= dim {
				return nil, fmt.Errorf("%w: feature %d outside model dimension %d", ErrDimensionMismatch, idx, dim)
			}
			z[i] += row[idx] * val
		}
	}
	return z, nil
}

// PredictProba implements Model
func (m *LinearModel) PredictProba(x Vector) ([]float64, error) {
	z, err := m.decision(x)
	if err != nil {
		return nil, err
	}

	if m.binary() {
		p := 1 / (1 + math.Exp(-z[0]))
		return []float64{1 - p, p}, nil
	}

	maxZ := z[0]
	for _, v := range z[1:] {
		maxZ = math.Max(maxZ, v)
	}
	probs := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		probs[i] = math.Exp(v - maxZ)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Predict implements Model
func (m *LinearModel) Predict(x Vector) (string, error) {
	probs, err := m.PredictProba(x)
	if err != nil {
		return "", err
	}
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.ClassLabels[best], nil
}
