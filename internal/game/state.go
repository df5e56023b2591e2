package game

import (
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/black-story/internal/extract"
	"github.com/pkg/errors"
)

// Wire keys used by the Judge and the Detective.
const (
	KeyShortStory = "HISTORIA_CORTA"
	KeyLongStory  = "HISTORIA_LARGA"
	KeySolution   = "SOLUCION"
	KeyQuestion   = "PREGUNTA"

	ReasoningLabel = "RAZONAMIENTO:"
)

var (
	StorySchema = extract.Schema{Keys: []string{KeyShortStory, KeyLongStory, KeySolution}}
	TurnSchema  = extract.Schema{Keys: []string{KeyQuestion, KeySolution}, ReasoningLabel: ReasoningLabel}
)

// Story is the Judge's mystery. All fields are non-empty.
type Story struct {
	Short    string `json:"short"`
	Long     string `json:"long"`
	Solution string `json:"solution"`
}

// NewStory builds a Story from extracted fields. It fails with a
// *Failure of kind ErrStoryIncomplete when any field is blank.
func NewStory(fields extract.Fields) (Story, error) {
	story := Story{
		Short:    strings.TrimSpace(fields.Get(KeyShortStory)),
		Long:     strings.TrimSpace(fields.Get(KeyLongStory)),
		Solution: strings.TrimSpace(fields.Get(KeySolution)),
	}
	var missing []string
	if story.Short == "" {
		missing = append(missing, KeyShortStory)
	}
	if story.Long == "" {
		missing = append(missing, KeyLongStory)
	}
	if story.Solution == "" {
		missing = append(missing, KeySolution)
	}
	if len(missing) > 0 {
		return Story{}, &Failure{
			Kind:       ErrStoryIncomplete,
			Diagnostic: "faltan campos en la historia: " + strings.Join(missing, ", "),
		}
	}
	return story, nil
}

// State is a single game session. It is owned by one Engine and never
// shared.
type State struct {
	story    Story
	turn     int
	maxTurns int
	history  []Entry
	status   Status
}

// NewState starts a session for an accepted story.
func NewState(story Story, maxTurns int) *State {
	s := newSession(maxTurns)
	_ = s.accept(story)
	return s
}

func newSession(maxTurns int) *State {
	return &State{maxTurns: maxTurns, status: StatusAwaitingStory}
}

func (s *State) accept(story Story) error {
	if err := s.transition(StatusInProgress); err != nil {
		return err
	}
	s.story = story
	return nil
}

func (s *State) Story() Story   { return s.story }
func (s *State) Turn() int      { return s.turn }
func (s *State) MaxTurns() int  { return s.maxTurns }
func (s *State) Status() Status { return s.status }

// IsAtTurnLimit reports whether the current turn is the last one allowed.
func (s *State) IsAtTurnLimit() bool { return s.turn >= s.maxTurns }

// NextTurn advances the turn counter and returns the new turn.
func (s *State) NextTurn() int {
	s.turn++
	return s.turn
}

// RecordQuestion appends an answered question.
func (s *State) RecordQuestion(question string, verdict Verdict) {
	s.history = append(s.history, Entry{
		Kind:    EntryQuestion,
		Turn:    s.turn,
		Text:    question,
		Verdict: verdict,
	})
}

// RecordSolutionAttempt appends a graded solution attempt.
func (s *State) RecordSolutionAttempt(text string, correct bool) {
	s.history = append(s.history, Entry{
		Kind:    EntrySolutionAttempt,
		Turn:    s.turn,
		Text:    text,
		Correct: correct,
	})
}

// History returns a copy of the conversation so far.
func (s *State) History() []Entry {
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// FormatHistory renders the history for display. The engine never reads it
// back.
func (s *State) FormatHistory() []string {
	lines := make([]string, 0, len(s.history)*2)
	for _, e := range s.history {
		switch e.Kind {
		case EntryQuestion:
			lines = append(lines,
				fmt.Sprintf("[Turno %d] %s: %s", e.Turn, SpeakerDetective, e.Text),
				fmt.Sprintf("[Turno %d] %s: %s", e.Turn, SpeakerJudge, e.Verdict),
			)
		case EntrySolutionAttempt:
			outcome := "incorrecta"
			if e.Correct {
				outcome = "correcta"
			}
			lines = append(lines,
				fmt.Sprintf("[Turno %d] %s (Intento de solución): %s", e.Turn, SpeakerDetective, e.Text),
				fmt.Sprintf("[Turno %d] %s: solución %s", e.Turn, SpeakerSystem, outcome),
			)
		}
	}
	return lines
}

// transition moves the session forward. Terminal statuses are absorbing and
// InProgress is only reachable from AwaitingStory.
func (s *State) transition(to Status) error {
	switch {
	case s.status.Terminal():
		return errors.Errorf("game: session already %s, cannot move to %s", s.status, to)
	case to == StatusInProgress && s.status != StatusAwaitingStory:
		return errors.Errorf("game: cannot move from %s to %s", s.status, to)
	case to == StatusAwaitingStory:
		return errors.Errorf("game: cannot move from %s to %s", s.status, to)
	}
	s.status = to
	return nil
}
