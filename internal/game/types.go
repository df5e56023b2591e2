// Package game runs a Black Story session: the Judge writes a mystery, the
// Detective asks closed questions or proposes a solution.
package game

import (
	"context"
	"strings"
)

// Generator is a text-completion model. Implementations own retries,
// authentication and transport.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Speakers shown to the renderer.
const (
	SpeakerJudge     = "Juez"
	SpeakerDetective = "Detective"
	SpeakerSystem    = "Sistema"
)

// Status is the lifecycle state of a session. It only moves forward.
type Status int

const (
	StatusAwaitingStory Status = iota
	StatusInProgress
	StatusSolved
	StatusFailed
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingStory:
		return "awaiting-story"
	case StatusInProgress:
		return "in-progress"
	case StatusSolved:
		return "solved"
	case StatusFailed:
		return "failed"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether s is Solved, Failed or Aborted.
func (s Status) Terminal() bool {
	return s == StatusSolved || s == StatusFailed || s == StatusAborted
}

// Verdict is one of the Judge's closed answers.
type Verdict string

const (
	VerdictYes        Verdict = "Sí"
	VerdictNo         Verdict = "No"
	VerdictIrrelevant Verdict = "Irrelevante"
)

// Verdicts is the closed answer set.
var Verdicts = []Verdict{VerdictYes, VerdictNo, VerdictIrrelevant}

// ParseVerdict accepts the trimmed text only if it is exactly one of Verdicts.
func ParseVerdict(s string) (Verdict, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Verdicts {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// EntryKind discriminates history entries.
type EntryKind int

const (
	EntryQuestion EntryKind = iota
	EntrySolutionAttempt
)

func (k EntryKind) String() string {
	if k == EntrySolutionAttempt {
		return "solution-attempt"
	}
	return "question"
}

// MarshalText implements encoding.TextMarshaler.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one item of the conversation history. Verdict is set for
// questions, Correct for solution attempts.
type Entry struct {
	Kind    EntryKind `json:"kind"`
	Turn    int       `json:"turn"`
	Text    string    `json:"text"`
	Verdict Verdict   `json:"verdict,omitempty"`
	Correct bool      `json:"correct,omitempty"`
}

// Result is the terminal report of a session.
type Result struct {
	Status            Status   `json:"status"`
	Story             Story    `json:"story"`
	Turns             int      `json:"turns"`
	History           []Entry  `json:"history"`
	Failure           *Failure `json:"failure,omitempty"`
	SolvedOnFinalTurn bool     `json:"solved_on_final_turn,omitempty"`
	RevealedSolution  string   `json:"revealed_solution,omitempty"`
}
