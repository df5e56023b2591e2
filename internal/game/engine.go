package game

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/lorenzotomasdiez/black-story/internal/extract"
	"github.com/lorenzotomasdiez/black-story/internal/match"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxTurns is the number of Detective turns in a session.
const DefaultMaxTurns = 10

// Engine drives one Black Story session between a Judge and a Detective.
type Engine struct {
	judge     Generator
	detective Generator
	maxTurns  int
	threshold float64
	log       zerolog.Logger
	OnEvent   func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxTurns sets the turn limit. Values below 1 are ignored.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxTurns = n
		}
	}
}

// WithMatchThreshold sets the solution matcher threshold. Values outside
// (0, 1] are ignored.
func WithMatchThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 && t <= 1 {
			e.threshold = t
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates a new game engine.
func NewEngine(judge, detective Generator, opts ...Option) *Engine {
	e := &Engine{
		judge:     judge,
		detective: detective,
		maxTurns:  DefaultMaxTurns,
		threshold: match.DefaultThreshold,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ending describes how a session terminates.
type ending struct {
	status  Status
	failure *Failure
	reason  string
	final   bool
}

// Run plays a full session. Expected protocol failures yield a terminal
// Result and a nil error. Model errors and cancellation yield an Aborted
// Result together with the error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	state := newSession(e.maxTurns)

	if err := ctx.Err(); err != nil {
		return e.cancelled(state, err)
	}
	raw, err := e.judge.Generate(ctx, storyPrompt())
	if err != nil {
		return e.modelFailed(state, SpeakerJudge, err)
	}
	story, failure := parseStory(raw)
	if failure != nil {
		e.log.Warn().Str("kind", failure.Kind.Error()).Str("diagnostic", failure.Diagnostic).Msg("story rejected")
		return e.end(state, ending{
			status:  StatusAborted,
			failure: failure,
			reason:  "El Juez no generó la historia en el formato esperado: " + failure.Diagnostic,
		}), nil
	}
	if err := state.accept(story); err != nil {
		return nil, err
	}
	e.log.Debug().Int("max_turns", e.maxTurns).Msg("story accepted")
	e.emit(Event{Kind: EventStoryCreated, Speaker: SpeakerJudge, Model: e.judge.Name(), Text: story.Short, Story: &story})

	for {
		if err := ctx.Err(); err != nil {
			return e.cancelled(state, err)
		}
		turn := state.NextTurn()
		if turn > state.MaxTurns() {
			return e.end(state, e.limitReached(state)), nil
		}
		e.emit(Event{Kind: EventTurnStarted, Turn: turn})
		force := state.IsAtTurnLimit()
		e.log.Debug().Int("turn", turn).Bool("force_solution", force).Msg("turn started")

		raw, err := e.detective.Generate(ctx, detectivePrompt(story.Short, state.history, turn, state.MaxTurns()))
		if err != nil {
			return e.modelFailed(state, SpeakerDetective, err)
		}
		outcome := ParseTurn(raw)
		if outcome.HasReasoning {
			e.log.Debug().Int("turn", turn).Str("reasoning", outcome.Reasoning).Msg("detective reasoning")
		}

		switch outcome.Kind {
		case OutcomeQuestion:
			e.emit(Event{Kind: EventQuestion, Turn: turn, Speaker: SpeakerDetective, Model: e.detective.Name(), Text: outcome.Text})
			answer, err := e.judge.Generate(ctx, verdictPrompt(story, outcome.Text))
			if err != nil {
				return e.modelFailed(state, SpeakerJudge, err)
			}
			verdict, ok := ParseVerdict(answer)
			if !ok {
				return e.end(state, e.invalidVerdict(answer)), nil
			}
			state.RecordQuestion(outcome.Text, verdict)
			e.emit(Event{Kind: EventVerdict, Turn: turn, Speaker: SpeakerJudge, Model: e.judge.Name(), Text: string(verdict)})
			if force {
				return e.end(state, e.limitReached(state)), nil
			}

		case OutcomeSolutionAttempt:
			correct := match.Matches(outcome.Text, story.Solution, e.threshold)
			state.RecordSolutionAttempt(outcome.Text, correct)
			e.emit(Event{Kind: EventSolutionAttempt, Turn: turn, Speaker: SpeakerDetective, Model: e.detective.Name(), Text: outcome.Text, Correct: correct})
			e.log.Debug().Int("turn", turn).Float64("score", match.Score(outcome.Text, story.Solution)).Bool("correct", correct).Msg("solution graded")
			if correct {
				reason := "¡El Detective ha resuelto el misterio! Fin del juego."
				if force {
					reason = fmt.Sprintf("¡El Detective ha resuelto el misterio en el turno %d! Fin del juego.", turn)
				}
				return e.end(state, ending{status: StatusSolved, reason: reason, final: force}), nil
			}
			if force {
				return e.end(state, ending{
					status: StatusFailed,
					failure: &Failure{
						Kind:       ErrTurnLimitExceeded,
						Diagnostic: fmt.Sprintf("intento final incorrecto en el turno %d", turn),
					},
					reason: fmt.Sprintf("El Detective no acertó en el turno %d. Fin de la partida. La solución era: %s", turn, story.Solution),
				}), nil
			}

		default:
			e.log.Warn().Int("turn", turn).Str("diagnostic", outcome.Diagnostic).Msg("detective protocol violation")
			return e.end(state, ending{
				status: StatusAborted,
				failure: &Failure{
					Kind:       ErrProtocolViolation,
					Raw:        outcome.Raw,
					Diagnostic: outcome.Diagnostic,
				},
				reason: "El Detective no formuló una pregunta o solución válida o el formato JSON es incorrecto. " +
					outcome.Diagnostic + " Respuesta completa del Detective: " + outcome.Raw,
			}), nil
		}
	}
}

func parseStory(raw string) (Story, *Failure) {
	fields, err := extract.Extract(raw, StorySchema)
	if err != nil {
		return Story{}, &Failure{Kind: ErrExtraction, Raw: raw, Diagnostic: err.Error(), Cause: err}
	}
	story, err := NewStory(fields)
	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			f.Raw = raw
			return Story{}, f
		}
		return Story{}, &Failure{Kind: ErrStoryIncomplete, Raw: raw, Diagnostic: err.Error(), Cause: err}
	}
	return story, nil
}

func (e *Engine) limitReached(state *State) ending {
	return ending{
		status: StatusFailed,
		failure: &Failure{
			Kind:       ErrTurnLimitExceeded,
			Diagnostic: fmt.Sprintf("sin solución tras %d turnos", state.MaxTurns()),
		},
		reason: fmt.Sprintf("Se ha alcanzado el límite de %d turnos. El Detective no ha resuelto el misterio. La solución era: %s",
			state.MaxTurns(), state.Story().Solution),
	}
}

func (e *Engine) invalidVerdict(answer string) ending {
	answer = strings.TrimSpace(answer)
	ev := e.log.Warn().Str("answer", answer)
	if near, ok := nearVerdict(answer); ok {
		ev = ev.Str("near", string(near))
	}
	ev.Msg("judge verdict outside the closed set")
	return ending{
		status: StatusAborted,
		failure: &Failure{
			Kind:       ErrProtocolViolation,
			Raw:        answer,
			Diagnostic: fmt.Sprintf("veredicto %q fuera de {Sí, No, Irrelevante}", answer),
		},
		reason: fmt.Sprintf("El Juez dio una respuesta inválida: '%s'. Fin del juego.", answer),
	}
}

func (e *Engine) modelFailed(state *State, speaker string, err error) (*Result, error) {
	err = errors.Wrapf(err, "game: %s", strings.ToLower(speaker))
	return e.end(state, ending{
		status:  StatusAborted,
		failure: &Failure{Kind: ErrModel, Diagnostic: err.Error(), Cause: err},
		reason:  "Ocurrió un error durante el juego: " + err.Error(),
	}), err
}

func (e *Engine) cancelled(state *State, err error) (*Result, error) {
	err = errors.Wrap(err, "game")
	return e.end(state, ending{
		status:  StatusAborted,
		failure: &Failure{Kind: ErrCancelled, Diagnostic: err.Error(), Cause: err},
		reason:  "Partida abandonada.",
	}), err
}

// end moves the session to a terminal status, emits SessionEnded and builds
// the Result.
func (e *Engine) end(state *State, how ending) *Result {
	if err := state.transition(how.status); err != nil {
		e.log.Error().Err(err).Msg("invalid transition")
	}
	res := &Result{
		Status:            state.Status(),
		Story:             state.Story(),
		Turns:             state.Turn(),
		History:           state.History(),
		Failure:           how.failure,
		SolvedOnFinalTurn: how.status == StatusSolved && how.final,
	}
	if how.status != StatusSolved {
		res.RevealedSolution = state.Story().Solution
	}

	ev := e.log.Info().Str("status", res.Status.String()).Int("turns", res.Turns)
	if how.failure != nil {
		ev = ev.Str("kind", how.failure.Kind.Error())
	}
	ev.Msg("session ended")

	e.emit(Event{
		Kind:             EventSessionEnded,
		Turn:             state.Turn(),
		Speaker:          SpeakerSystem,
		Status:           res.Status,
		Reason:           how.reason,
		RevealedSolution: res.RevealedSolution,
		FinalTurn:        res.SolvedOnFinalTurn,
	})
	return res
}

func (e *Engine) emit(ev Event) {
	if e.OnEvent != nil {
		e.OnEvent(ev)
	}
}

// nearVerdict reports the verdict that answer would match after folding case,
// accents and punctuation. Such answers are still rejected.
func nearVerdict(answer string) (Verdict, bool) {
	folded := fold(answer)
	for _, v := range Verdicts {
		if folded == fold(string(v)) {
			return v, true
		}
	}
	return "", false
}

func fold(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
