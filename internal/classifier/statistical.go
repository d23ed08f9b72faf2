package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	// ErrEmptyVocabulary is returned by a vectorizer with no vocabulary
	ErrEmptyVocabulary = errors.New("vectorizer has an empty vocabulary")
	// ErrDimensionMismatch is returned when a model and vectorizer disagree on feature count
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)

// Vector is a sparse feature vector keyed by feature index
type Vector map[int]float64

// Vectorizer turns text into a feature vector
type Vectorizer interface {
	Transform(text string) (Vector, error)
}

// Model is a pre-trained text classifier over vectorized features
type Model interface {
	// Classes returns the class labels in the order PredictProba reports them
	Classes() []string
	// Predict returns the most likely class label
	Predict(x Vector) (string, error)
	// PredictProba returns the probability of each class
	PredictProba(x Vector) ([]float64, error)
}

// Predict runs a model/vectorizer pair on text. A missing model or vectorizer,
// or any failure while scoring, yields an empty Prediction. Failures are
// logged and never returned.
func Predict(model Model, vectorizer Vectorizer, text string) Prediction {
	if model == nil || vectorizer == nil {
		return Prediction{}
	}

	pred, err := predict(model, vectorizer, text)
	if err != nil {
		slog.Warn("statistical prediction failed", "err", err)
		return Prediction{}
	}
	return pred
}

func predict(model Model, vectorizer Vectorizer, text string) (pred Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during prediction: %v", r)
		}
	}()

	x, err := vectorizer.Transform(text)
	if err != nil {
		return Prediction{}, fmt.Errorf("transform: %w", err)
	}
	label, err := model.Predict(x)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	probs, err := model.PredictProba(x)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict proba: %w", err)
	}
	if len(probs) == 0 {
		return Prediction{}, errors.New("empty probability distribution")
	}

	best := probs[0]
	for _, p := range probs[1:] {
		if p > best {
			best = p
		}
	}
	if !finite(best) || best < 0 || best > 1 {
		return Prediction{}, fmt.Errorf("probability %v outside [0, 1]", best)
	}
	return Prediction{Label: label, Confidence: round2(best)}, nil
}

// Pair binds a model to its vectorizer. The zero Pair is unavailable and
// always predicts nothing.
type Pair struct {
	Model      Model
	Vectorizer Vectorizer
}

// Predict implements Scorer
func (p Pair) Predict(text string) Prediction {
	return Predict(p.Model, p.Vectorizer, text)
}

// Available reports whether both halves of the pair are loaded
func (p Pair) Available() bool {
	return p.Model != nil && p.Vectorizer != nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
