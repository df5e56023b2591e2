package game

import "github.com/lorenzotomasdiez/black-story/internal/extract"

// OutcomeKind discriminates a parsed Detective turn.
type OutcomeKind int

const (
	OutcomeUnparseable OutcomeKind = iota
	OutcomeQuestion
	OutcomeSolutionAttempt
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeQuestion:
		return "question"
	case OutcomeSolutionAttempt:
		return "solution-attempt"
	default:
		return "unparseable"
	}
}

// TurnOutcome is the parsed result of one Detective reply. Reasoning is kept
// for debug logging only and is never sent to the Judge or rendered.
type TurnOutcome struct {
	Kind         OutcomeKind
	Text         string
	Reasoning    string
	HasReasoning bool
	Strategy     extract.Strategy

	// Set when Kind is OutcomeUnparseable.
	Raw        string
	Diagnostic string
}

// ParseTurn classifies a raw Detective reply. A question takes precedence
// over a solution attempt when both are present.
func ParseTurn(raw string) TurnOutcome {
	fields, err := extract.Extract(raw, TurnSchema)
	if err != nil {
		return TurnOutcome{Kind: OutcomeUnparseable, Raw: raw, Diagnostic: err.Error()}
	}

	out := TurnOutcome{
		Reasoning:    fields.Reasoning,
		HasReasoning: fields.HasReasoning,
		Strategy:     fields.Strategy,
	}
	key, value, ok := fields.First(KeyQuestion, KeySolution)
	switch {
	case !ok:
		out.Kind = OutcomeUnparseable
		out.Raw = raw
		out.Diagnostic = "la respuesta no contiene " + KeyQuestion + " ni " + KeySolution
	case key == KeyQuestion:
		out.Kind = OutcomeQuestion
		out.Text = value
	default:
		out.Kind = OutcomeSolutionAttempt
		out.Text = value
	}
	return out
}
