package classifier

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// PairPaths locates the artifacts of one model/vectorizer pair
type PairPaths struct {
	Model      string
	Vectorizer string
}

type artifactKind struct {
	Kind string `yaml:"kind"`
}

func readArtifact(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var k artifactKind
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return data, k.Kind, nil
}

// LoadVectorizer loads a vectorizer artifact from a YAML file
func LoadVectorizer(path string) (Vectorizer, error) {
	data, kind, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "tfidf":
		v := &TFIDFVectorizer{Lowercase: true, Norm: "l2"}
		if err := yaml.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if len(v.Vocabulary) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyVocabulary)
		}
		for i, w := range v.IDF {
			if !finite(w) {
				return nil, fmt.Errorf("%s: idf[%d] is not finite: %v", path, i, w)
			}
		}
		for tok, idx := range v.Vocabulary {
			if idx < 0 || idx >= len(v.IDF) {
				return nil, fmt.Errorf("%s: token %q has index %d outside idf length %d", path, tok, idx, len(v.IDF))
			}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unknown vectorizer kind %q", path, kind)
	}
}

// LoadModel loads a model artifact from a YAML file
func LoadModel(path string) (Model, error) {
	data, kind, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "linear":
		m := &LinearModel{}
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%s: unknown model kind %q", path, kind)
	}
}

type dimensioned interface {
	Dim() int
}

// LoadPair loads a model and its vectorizer. On any error the zero Pair is
// returned, which predicts nothing.
func LoadPair(paths PairPaths) (Pair, error) {
	if paths.Model == "" || paths.Vectorizer == "" {
		return Pair{}, fmt.Errorf("model or vectorizer path not configured")
	}
	model, err := LoadModel(paths.Model)
	if err != nil {
		return Pair{}, fmt.Errorf("load model: %w", err)
	}
	vectorizer, err := LoadVectorizer(paths.Vectorizer)
	if err != nil {
		return Pair{}, fmt.Errorf("load vectorizer: %w", err)
	}

	md, mok := model.(dimensioned)
	vd, vok := vectorizer.(dimensioned)
	if mok && vok && md.Dim() != vd.Dim() {
		return Pair{}, fmt.Errorf("%w: model expects %d features, vectorizer produces %d",
			ErrDimensionMismatch, md.Dim(), vd.Dim())
	}
	return Pair{Model: model, Vectorizer: vectorizer}, nil
}

// LoadScorers loads one pair per category. Categories that fail to load get
// an unavailable Pair and stay in rule-only mode for the process lifetime.
func LoadScorers(paths map[Category]PairPaths) map[Category]Scorer {
	scorers := make(map[Category]Scorer, len(Categories))
	for _, cat := range Categories {
		if paths[cat] == (PairPaths{}) {
			slog.Debug("no statistical scorer configured", "category", string(cat))
			scorers[cat] = Pair{}
			continue
		}
		pair, err := LoadPair(paths[cat])
		if err != nil {
			slog.Warn("statistical scorer unavailable, using rules only",
				"category", string(cat), "err", err)
		} else {
			slog.Info("statistical scorer loaded", "category", string(cat),
				"model", paths[cat].Model, "classes", pair.Model.Classes())
		}
		scorers[cat] = pair
	}
	return scorers
}
