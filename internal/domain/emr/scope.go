// Package emr holds the per-session clinical editing workflow: a draft
// SOAP note plus two independent AI assists, triage analysis and
// history summarization.
package emr

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/platform/assist"
)

var (
	// ErrEmptyInput is returned when a triage request carries no
	// symptom text.
	ErrEmptyInput = errors.New("no input text")
	// ErrBusy is returned when a request of the same kind is already
	// in flight for the scope.
	ErrBusy = errors.New("request already in flight")
	// ErrNotImplemented marks operations the workflow does not yet
	// persist.
	ErrNotImplemented = errors.New("not implemented")
)

// Analyzer is the slice of the assist gateway the workflow needs.
type Analyzer interface {
	AnalyzeSymptoms(ctx context.Context, symptoms string) assist.Result
	SummarizeNotes(ctx context.Context, notes string) assist.Result
}

// Scope is the editing state for one patient within one session. The
// two assists run independently; each keeps its previous result visible
// while a replacement is loading. A scope abandoned by navigating to
// another patient is closed, and any in-flight completions for it are
// dropped.
type Scope struct {
	mu        sync.Mutex
	patientID string
	closed    bool

	draft registry.SOAP

	triageLoading  bool
	triage         assist.Result
	hasTriage      bool
	summaryLoading bool
	summary        assist.Result
	hasSummary     bool
}

func newScope(patientID string) *Scope {
	return &Scope{patientID: patientID}
}

// State is a point-in-time view of a scope.
type State struct {
	PatientID      string        `json:"patient_id"`
	Draft          registry.SOAP `json:"draft"`
	TriageLoading  bool          `json:"triage_loading"`
	TriageText     string        `json:"triage_text,omitempty"`
	SummaryLoading bool          `json:"summary_loading"`
	SummaryText    string        `json:"summary_text,omitempty"`
}

// Snapshot returns the current state.
func (s *Scope) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		PatientID:      s.patientID,
		Draft:          s.draft,
		TriageLoading:  s.triageLoading,
		SummaryLoading: s.summaryLoading,
	}
	if s.hasTriage {
		st.TriageText = s.triage.Display()
	}
	if s.hasSummary {
		st.SummaryText = s.summary.Display()
	}
	return st
}

// UpdateDraft replaces the draft note.
func (s *Scope) UpdateDraft(draft registry.SOAP) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// RequestTriage starts an asynchronous symptom analysis. Empty symptom
// text is rejected, as is a request while one is already loading. The
// returned channel closes when the request settles.
func (s *Scope) RequestTriage(gw Analyzer, symptoms string) (<-chan struct{}, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	if s.triageLoading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.triageLoading = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		res := gw.AnalyzeSymptoms(context.Background(), symptoms)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.triage = res
		s.hasTriage = true
		s.triageLoading = false
	}()
	return done, nil
}

// RequestSummary starts an asynchronous summary of the given clinical
// notes. Unlike triage there is no input guard; summarizing an empty
// history is allowed.
func (s *Scope) RequestSummary(gw Analyzer, notes string) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.summaryLoading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.summaryLoading = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		res := gw.SummarizeNotes(context.Background(), notes)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.summary = res
		s.hasSummary = true
		s.summaryLoading = false
	}()
	return done, nil
}

// SaveRecord would commit the draft note to the medical record.
func (s *Scope) SaveRecord() error {
	return ErrNotImplemented
}

func (s *Scope) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
