package output

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/lorenzotomasdiez/black-story/internal/game"
	"github.com/rs/zerolog"
)

const pausePrompt = "[PULSA INTRO PARA CONTINUAR]"

// NewPause returns a function that waits for Enter on in.
func NewPause(in io.Reader, out io.Writer) func() {
	r := bufio.NewReader(in)
	return func() {
		fmt.Fprint(out, pausePrompt)
		_, _ = r.ReadString('\n')
	}
}

// Recorder renders game events to the terminal and the transcript.
type Recorder struct {
	printer    *Printer
	transcript *Transcript
	pause      func()
	maxTurns   int
	now        func() time.Time
	log        zerolog.Logger
	err        error
}

// NewRecorder creates a Recorder. transcript and pause may be nil.
func NewRecorder(printer *Printer, transcript *Transcript, pause func(), maxTurns int, log zerolog.Logger) *Recorder {
	if pause == nil {
		pause = func() {}
	}
	return &Recorder{
		printer:    printer,
		transcript: transcript,
		pause:      pause,
		maxTurns:   maxTurns,
		now:        time.Now,
		log:        log,
	}
}

// Err returns the first transcript write error.
func (r *Recorder) Err() error { return r.err }

// Handle renders one event. It is meant to be set as Engine.OnEvent.
func (r *Recorder) Handle(ev game.Event) {
	switch ev.Kind {
	case game.EventStoryCreated:
		if r.transcript != nil && ev.Story != nil {
			r.check(r.transcript.Begin(*ev.Story))
			r.printer.Bubble(ToneInfo, game.SpeakerSystem, "Historia y solución guardadas en "+r.transcript.Path())
		}
		if ev.Story != nil {
			r.printer.LongStory(ev.Story.Long, r.now())
		}
		r.printer.Bubble(ToneJudge, speaker(game.SpeakerJudge, ev.Model), ev.Text)
		r.pause()

	case game.EventTurnStarted:
		r.printer.TurnBanner(ev.Turn)
		r.write(fmt.Sprintf("\n--- Turno %d ---", ev.Turn))

	case game.EventQuestion:
		r.printer.Bubble(ToneDetective, speaker(game.SpeakerDetective, ev.Model), ev.Text)
		r.write(game.SpeakerDetective + ": " + ev.Text)
		r.pause()

	case game.EventVerdict:
		r.printer.Bubble(ToneJudge, speaker(game.SpeakerJudge, ev.Model), ev.Text)
		r.write(game.SpeakerJudge + ": " + ev.Text)
		r.pause()

	case game.EventSolutionAttempt:
		r.printer.Bubble(ToneDetective, speaker(game.SpeakerDetective, ev.Model), "Intento de solución: "+ev.Text)
		r.write(game.SpeakerDetective + " (Intento de solución): " + ev.Text)
		r.pause()
		if ev.Correct {
			return
		}
		r.system(ToneWarn, "El Detective no ha acertado la solución.")
		if ev.Turn < r.maxTurns {
			r.system(ToneWarn, "Continúa el juego.")
			r.pause()
		}

	case game.EventSessionEnded:
		r.system(endTone(ev), ev.Reason)
	}
}

func (r *Recorder) system(tone Tone, msg string) {
	r.printer.Bubble(tone, game.SpeakerSystem, msg)
	r.write(game.SpeakerSystem + ": " + msg)
}

func (r *Recorder) write(line string) {
	if r.transcript != nil {
		r.check(r.transcript.Append(line))
	}
}

func (r *Recorder) check(err error) {
	if err == nil {
		return
	}
	r.log.Warn().Err(err).Msg("transcript write failed")
	if r.err == nil {
		r.err = err
	}
}

func speaker(role, model string) string {
	if model == "" {
		return role
	}
	return role + " (" + model + ")"
}

func endTone(ev game.Event) Tone {
	switch ev.Status {
	case game.StatusSolved:
		if ev.FinalTurn {
			return ToneWarn
		}
		return ToneSuccess
	case game.StatusFailed:
		return ToneEnd
	default:
		return ToneError
	}
}
