package assist

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Status classifies the outcome of a generation request.
type Status int

const (
	// StatusOK means the model produced usable text.
	StatusOK Status = iota
	// StatusNoCredential means no API key is configured. No outbound
	// call is made in this state.
	StatusNoCredential
	// StatusFailed means the upstream call errored or timed out.
	StatusFailed
	// StatusEmpty means the call succeeded but produced no text.
	StatusEmpty
)

// Intent names the clinical task a request serves. Fallback wording is
// chosen per intent.
type Intent int

const (
	IntentTriage Intent = iota
	IntentSummary
)

// Result is the outcome of a generation request. Text is set only when
// Status is StatusOK; callers render non-OK outcomes via Display.
type Result struct {
	Intent Intent
	Status Status
	Text   string
}

var fallbackText = map[Intent]map[Status]string{
	IntentTriage: {
		StatusNoCredential: "API Key missing. Cannot perform AI analysis.",
		StatusFailed:       "AI Analysis unavailable currently.",
		StatusEmpty:        "Could not generate analysis.",
	},
	IntentSummary: {
		StatusNoCredential: "API Key missing.",
		StatusFailed:       "AI Summary unavailable.",
		StatusEmpty:        "Could not generate summary.",
	},
}

// Display returns the text to show the clinician: the model output when
// the request succeeded, a fixed per-intent notice otherwise.
func (r Result) Display() string {
	if r.Status == StatusOK {
		return r.Text
	}
	return fallbackText[r.Intent][r.Status]
}

// Gateway fronts the text generator with credential checks, a call
// timeout, and outcome classification. It never returns an error;
// failures come back as classified Results.
type Gateway struct {
	gen     Generator
	hasKey  bool
	timeout time.Duration
}

// NewGateway builds a gateway over gen. An empty apiKey puts the
// gateway in no-credential mode. A non-positive timeout defaults to 30s.
func NewGateway(gen Generator, apiKey string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{gen: gen, hasKey: apiKey != "", timeout: timeout}
}

// AnalyzeSymptoms asks the model for a triage suggestion.
func (g *Gateway) AnalyzeSymptoms(ctx context.Context, symptoms string) Result {
	return g.generate(ctx, IntentTriage, TriagePrompt(symptoms))
}

// SummarizeNotes asks the model for a concise summary of clinical notes.
func (g *Gateway) SummarizeNotes(ctx context.Context, notes string) Result {
	return g.generate(ctx, IntentSummary, SummaryPrompt(notes))
}

func (g *Gateway) generate(ctx context.Context, intent Intent, prompt string) Result {
	if !g.hasKey {
		return Result{Intent: intent, Status: StatusNoCredential}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Int("intent", int(intent)).Msg("Text generation failed")
		return Result{Intent: intent, Status: StatusFailed}
	}
	if strings.TrimSpace(text) == "" {
		return Result{Intent: intent, Status: StatusEmpty}
	}
	return Result{Intent: intent, Status: StatusOK, Text: text}
}
