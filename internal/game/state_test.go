package game

import (
	"testing"

	"github.com/lorenzotomasdiez/black-story/internal/extract"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(kv map[string]string) extract.Fields {
	return extract.Fields{Values: kv}
}

func TestNewStoryTrimsFields(t *testing.T) {
	story, err := NewStory(fieldsOf(map[string]string{
		KeyShortStory: " corta ",
		KeyLongStory:  "larga\n",
		KeySolution:   "\tsolución",
	}))
	require.NoError(t, err)
	assert.Equal(t, Story{Short: "corta", Long: "larga", Solution: "solución"}, story)
}

func TestNewStoryListsMissingFields(t *testing.T) {
	_, err := NewStory(fieldsOf(map[string]string{KeyShortStory: "corta"}))
	require.Error(t, err)

	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.True(t, errors.Is(err, ErrStoryIncomplete))
	assert.Contains(t, f.Diagnostic, KeyLongStory)
	assert.Contains(t, f.Diagnostic, KeySolution)
	assert.NotContains(t, f.Diagnostic, KeyShortStory)
}

func TestStateHistoryIsAppendOnlyCopy(t *testing.T) {
	s := NewState(Story{Short: "a", Long: "b", Solution: "c"}, 3)
	s.NextTurn()
	s.RecordQuestion("¿Uno?", VerdictYes)
	s.NextTurn()
	s.RecordSolutionAttempt("dos", false)

	h := s.History()
	require.Len(t, h, 2)
	h[0].Text = "mutated"
	assert.Equal(t, "¿Uno?", s.History()[0].Text)
	assert.Equal(t, 1, s.History()[0].Turn)
	assert.Equal(t, EntrySolutionAttempt, s.History()[1].Kind)
}

func TestStateTurnLimit(t *testing.T) {
	s := NewState(Story{Short: "a", Long: "b", Solution: "c"}, 2)
	assert.False(t, s.IsAtTurnLimit())
	s.NextTurn()
	assert.False(t, s.IsAtTurnLimit())
	s.NextTurn()
	assert.True(t, s.IsAtTurnLimit())
}

func TestStateTransitionsOnlyForward(t *testing.T) {
	s := newSession(10)
	assert.Equal(t, StatusAwaitingStory, s.Status())
	require.NoError(t, s.accept(Story{Short: "a", Long: "b", Solution: "c"}))
	assert.Equal(t, StatusInProgress, s.Status())

	assert.Error(t, s.accept(Story{}), "a story is accepted once")
	require.NoError(t, s.transition(StatusSolved))
	assert.Error(t, s.transition(StatusFailed))
	assert.Error(t, s.transition(StatusInProgress))
	assert.Equal(t, StatusSolved, s.Status())
}

func TestStateFormatHistory(t *testing.T) {
	s := NewState(Story{Short: "a", Long: "b", Solution: "c"}, 10)
	s.NextTurn()
	s.RecordQuestion("¿Había agua?", VerdictNo)
	s.NextTurn()
	s.RecordSolutionAttempt("Fue el mayordomo", true)

	assert.Equal(t, []string{
		"[Turno 1] Detective: ¿Había agua?",
		"[Turno 1] Juez: No",
		"[Turno 2] Detective (Intento de solución): Fue el mayordomo",
		"[Turno 2] Sistema: solución correcta",
	}, s.FormatHistory())
}

func TestParseVerdictExact(t *testing.T) {
	for _, v := range Verdicts {
		got, ok := ParseVerdict(" " + string(v) + "\n")
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	for _, s := range []string{"", "Si", "sí", "NO", "Irrelevante.", "Quizás"} {
		_, ok := ParseVerdict(s)
		assert.False(t, ok, s)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusAwaitingStory.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusSolved.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusAborted.Terminal())
}
