package game

import (
	"testing"

	"github.com/lorenzotomasdiez/black-story/internal/extract"
	"github.com/stretchr/testify/assert"
)

func TestParseTurnQuestion(t *testing.T) {
	out := ParseTurn(questionReply)
	assert.Equal(t, OutcomeQuestion, out.Kind)
	assert.Equal(t, "¿El hombre tenía sed?", out.Text)
	assert.True(t, out.HasReasoning)
	assert.Equal(t, "quizá el agua no era para beber", out.Reasoning)
	assert.Equal(t, extract.StrategyFenced, out.Strategy)
}

func TestParseTurnSolution(t *testing.T) {
	out := ParseTurn(`{"SOLUCION": "Fue el jardinero"}`)
	assert.Equal(t, OutcomeSolutionAttempt, out.Kind)
	assert.Equal(t, "Fue el jardinero", out.Text)
	assert.False(t, out.HasReasoning)
}

func TestParseTurnQuestionWinsOverSolution(t *testing.T) {
	out := ParseTurn(`{"SOLUCION": "Fue el jardinero", "PREGUNTA": "¿Había un jardín?"}`)
	assert.Equal(t, OutcomeQuestion, out.Kind)
	assert.Equal(t, "¿Había un jardín?", out.Text)
}

func TestParseTurnLegacyLines(t *testing.T) {
	out := ParseTurn("RAZONAMIENTO: pienso\nSOLUCION: Fue el jardinero\n")
	assert.Equal(t, OutcomeSolutionAttempt, out.Kind)
	assert.Equal(t, extract.StrategyLines, out.Strategy)
}

func TestParseTurnEmptyKeysUnparseable(t *testing.T) {
	raw := `{"PREGUNTA": "", "SOLUCION": "  "}`
	out := ParseTurn(raw)
	assert.Equal(t, OutcomeUnparseable, out.Kind)
	assert.Equal(t, raw, out.Raw)
	assert.NotEmpty(t, out.Diagnostic)
}

func TestParseTurnUnrelatedJSONUnparseable(t *testing.T) {
	out := ParseTurn(`{"RESPUESTA": "sí"}`)
	assert.Equal(t, OutcomeUnparseable, out.Kind)
}
