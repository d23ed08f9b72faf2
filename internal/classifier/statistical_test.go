package classifier

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type failingVectorizer struct{}

func (failingVectorizer) Transform(string) (Vector, error) {
	return nil, errors.New("boom")
}

type panickingModel struct{}

func (panickingModel) Classes() []string                      { return []string{"a", "b"} }
func (panickingModel) Predict(Vector) (string, error)         { panic("corrupt weights") }
func (panickingModel) PredictProba(Vector) ([]float64, error) { return nil, nil }

func testPair(t *testing.T) Pair {
	t.Helper()
	pair, err := LoadPair(PairPaths{
		Model:      filepath.Join("testdata", "model.yaml"),
		Vectorizer: filepath.Join("testdata", "vectorizer.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadPair() error = %v", err)
	}
	return pair
}

func TestPredict_Unavailable(t *testing.T) {
	pair := testPair(t)

	tests := []struct {
		name       string
		model      Model
		vectorizer Vectorizer
	}{
		{"no model", nil, pair.Vectorizer},
		{"no vectorizer", pair.Model, nil},
		{"vectorizer error", pair.Model, failingVectorizer{}},
		{"model panic", panickingModel{}, pair.Vectorizer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Predict(tt.model, tt.vectorizer, "please")
			if got.Available() || got.Confidence != 0 {
				t.Errorf("Predict() = %+v, want empty prediction", got)
			}
		})
	}
}

func TestPredict_Pair(t *testing.T) {
	pair := testPair(t)

	tests := []struct {
		text      string
		wantLabel string
		wantConf  float64
	}{
		{"Please", "polite", 0.74},
		{"hello there", "neutral", 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := pair.Predict(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("Predict(%q).Label = %q, want %q", tt.text, got.Label, tt.wantLabel)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Predict(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestTFIDFVectorizer_Transform(t *testing.T) {
	v := &TFIDFVectorizer{
		Vocabulary: map[string]int{"please": 0, "now": 1},
		IDF:        []float64{1, 2},
		Lowercase:  true,
		Norm:       "l2",
	}

	x, err := v.Transform("PLEASE, now! unknown")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	var norm float64
	for _, w := range x {
		norm += w * w
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("squared norm = %v, want 1", norm)
	}
	if x[1] <= x[0] {
		t.Errorf("weight(now) = %v should exceed weight(please) = %v", x[1], x[0])
	}

	empty := &TFIDFVectorizer{}
	if _, err := empty.Transform("x"); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("Transform() on empty vocabulary error = %v, want ErrEmptyVocabulary", err)
	}
}

func TestLinearModel_Binary(t *testing.T) {
	m := &LinearModel{
		ClassLabels: []string{"neutral", "harsh"},
		Coef:        [][]float64{{3}},
		Intercept:   []float64{0},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	probs, err := m.PredictProba(Vector{0: 1})
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	if math.Abs(probs[0]+probs[1]-1) > 1e-9 {
		t.Errorf("probabilities %v do not sum to 1", probs)
	}
	label, _ := m.Predict(Vector{0: 1})
	if label != "harsh" {
		t.Errorf("Predict() = %q, want harsh", label)
	}

	if _, err := m.Predict(Vector{5: 1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Predict() out of range error = %v, want ErrDimensionMismatch", err)
	}
}

func TestLoadPair_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("kind: forest\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name  string
		paths PairPaths
	}{
		{"not configured", PairPaths{}},
		{"missing file", PairPaths{Model: filepath.Join(dir, "nope.yaml"), Vectorizer: "testdata/vectorizer.yaml"}},
		{"corrupt model", PairPaths{Model: "testdata/corrupt.yaml", Vectorizer: "testdata/vectorizer.yaml"}},
		{"unknown kind", PairPaths{Model: unknown, Vectorizer: "testdata/vectorizer.yaml"}},
		{"dimension mismatch", PairPaths{Model: "testdata/model_wide.yaml", Vectorizer: "testdata/vectorizer.yaml"}},
		{"non-finite weights", PairPaths{Model: "testdata/nonfinite_model.yaml", Vectorizer: "testdata/vectorizer.yaml"}},
		{"non-finite idf", PairPaths{Model: "testdata/model.yaml", Vectorizer: "testdata/nonfinite_vectorizer.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := LoadPair(tt.paths)
			if err == nil {
				t.Fatal("LoadPair() error = nil, want error")
			}
			if pair.Available() {
				t.Error("failed LoadPair() returned an available pair")
			}
			if got := pair.Predict("please"); got.Available() {
				t.Errorf("failed pair Predict() = %+v, want empty", got)
			}
		})
	}
}

func TestLoadScorers_Degraded(t *testing.T) {
	scorers := LoadScorers(map[Category]PairPaths{
		CategoryBusinessEmail: {Model: "testdata/model.yaml", Vectorizer: "testdata/vectorizer.yaml"},
	})

	if len(scorers) != len(Categories) {
		t.Fatalf("LoadScorers() returned %d scorers, want %d", len(scorers), len(Categories))
	}
	if got := scorers[CategoryBusinessEmail].Predict("please"); !got.Available() {
		t.Error("business scorer should be available")
	}
	if got := scorers[CategoryCustomerSupport].Predict("please"); got.Available() {
		t.Error("support scorer should be unavailable")
	}
}

func TestPredict_NonFiniteProbability(t *testing.T) {
	v, err := LoadVectorizer("testdata/vectorizer.yaml")
	if err != nil {
		t.Fatalf("LoadVectorizer() error = %v", err)
	}
	m := &LinearModel{
		ClassLabels: []string{"neutral", "polite"},
		Coef:        [][]float64{{1, 1, 0}},
		Intercept:   []float64{math.NaN()},
	}

	if got := Predict(m, v, "please say thanks"); got.Available() || got.Confidence != 0 {
		t.Errorf("Predict() = %+v, want empty prediction", got)
	}
}
