// Package analyzer runs the tone and clarity engines over messages and
// merges their verdicts into one report per message.
package analyzer

import (
	"context"
	"runtime"

	"github.com/pthm/tonelint/internal/clarity"
	"github.com/pthm/tonelint/internal/classifier"
	"github.com/pthm/tonelint/internal/parser"
	"golang.org/x/sync/errgroup"
)

// Report is the combined analysis of one message
type Report struct {
	ID      string             `json:"id"`
	Source  string             `json:"source,omitempty"`
	User    string             `json:"user,omitempty"`
	Text    string             `json:"text"`
	Tone    classifier.Verdict `json:"tone"`
	Clarity clarity.Verdict    `json:"clarity"`
}

// Analyzer holds the loaded engines. It is safe for concurrent use.
type Analyzer struct {
	tone    *classifier.Analyzer
	clarity *clarity.Engine
}

// New creates an analyzer. A nil clarity engine uses the default checks.
func New(tone *classifier.Analyzer, engine *clarity.Engine) *Analyzer {
	if tone == nil {
		tone = classifier.NewAnalyzer(nil, nil)
	}
	if engine == nil {
		engine = clarity.NewEngine(nil)
	}
	return &Analyzer{tone: tone, clarity: engine}
}

// Tone returns the tone verdict for text
func (a *Analyzer) Tone(text string) classifier.Verdict {
	return a.tone.Analyze(text)
}

// Clarity returns the clarity verdict for text
func (a *Analyzer) Clarity(text string) clarity.Verdict {
	return a.clarity.Score(text)
}

// ModelAvailable reports whether the statistical scorer for cat is loaded
func (a *Analyzer) ModelAvailable(cat classifier.Category) bool {
	return a.tone.Available(cat)
}

// Analyze runs both engines on text
func (a *Analyzer) Analyze(text string) Report {
	return Report{
		Text:    text,
		Tone:    a.tone.Analyze(text),
		Clarity: a.clarity.Score(text),
	}
}

// AnalyzeMessage analyzes one parsed message, keeping its identity
func (a *Analyzer) AnalyzeMessage(source string, msg parser.Message) Report {
	r := a.Analyze(msg.Text)
	r.ID = msg.ID
	r.Source = source
	r.User = msg.User
	return r
}

// Target is a message together with the source it came from
type Target struct {
	Source  string
	Message parser.Message
}

// Targets flattens parsed files into analysis targets
func Targets(files ...*parser.ParsedFile) []Target {
	var targets []Target
	for _, f := range files {
		for _, m := range f.Messages {
			targets = append(targets, Target{Source: f.Path, Message: m})
		}
	}
	return targets
}

// AnalyzeAll analyzes targets in parallel and returns reports in input
// order. onDone, when set, is called once per finished target and may be
// called from several goroutines.
func (a *Analyzer) AnalyzeAll(ctx context.Context, targets []Target, onDone func(Report)) ([]Report, error) {
	reports := make([]Report, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = a.AnalyzeMessage(t.Source, t.Message)
			if onDone != nil {
				onDone(reports[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
