package classifier

// Label is the coarse tone of a message
type Label string

const (
	Harsh   Label = "harsh"
	Firm    Label = "firm"
	Polite  Label = "polite"
	Neutral Label = "neutral"
)

// Valid reports whether l is one of the four known tone labels
func (l Label) Valid() bool {
	switch l {
	case Harsh, Firm, Polite, Neutral:
		return true
	}
	return false
}

// Category selects which statistical scorer applies to a message
type Category string

const (
	// CategoryNone means no statistical scorer was consulted
	CategoryNone Category = ""
	// CategoryBusinessEmail is general business correspondence
	CategoryBusinessEmail Category = "business_email"
	// CategoryCustomerSupport is support requests and complaints
	CategoryCustomerSupport Category = "customer_support"
)

// Categories lists every scorer category in a stable order
var Categories = []Category{CategoryBusinessEmail, CategoryCustomerSupport}

// Scorer defines the interface for statistical tone scoring.
// Implementations never fail: an unavailable scorer returns an empty Prediction.
type Scorer interface {
	Predict(text string) Prediction
}

// Prediction is the output of a statistical scorer.
// An empty Label means the scorer was unavailable and Confidence is 0.
type Prediction struct {
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Available reports whether the scorer produced a label
func (p Prediction) Available() bool {
	return p.Label != ""
}

// RuleVerdict is the output of the heuristic classifier
type RuleVerdict struct {
	Label       Label    `json:"label"`
	Confidence  float64  `json:"confidence"`
	StyleTags   []string `json:"style_tags"`
	Explanation string   `json:"explanation"`
}

// RecommendedTone is a display hint shown alongside the verdict
type RecommendedTone struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Note  string `json:"note"`
}

// Verdict is the final tone decision for one message
type Verdict struct {
	Label           Label           `json:"label"`
	Confidence      float64         `json:"confidence"`
	StyleTags       []string        `json:"style_tags"`
	Explanation     string          `json:"explanation"`
	NeedsRewrite    bool            `json:"needs_rewrite"`
	RecommendedTone RecommendedTone `json:"recommended_tone"`
	ModelUsed       Category        `json:"model_used,omitempty"`
}
