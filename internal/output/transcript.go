package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lorenzotomasdiez/black-story/internal/game"
	"github.com/pkg/errors"
)

// StampLayout names transcript files after the session start time.
const StampLayout = "02-01-2006 15-04"

// Transcript is the plain-text record of a session. Every line is appended
// to disk as soon as it is written.
type Transcript struct {
	path  string
	begun bool
}

// NewTranscript picks a file under dir named after start. An existing file
// for the same minute is not overwritten; a numeric suffix is added instead.
func NewTranscript(dir string, start time.Time) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "output: creating output dir")
	}
	stem := start.Format(StampLayout)
	path := filepath.Join(dir, stem+".txt")
	for n := 2; exists(path); n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s (%d).txt", stem, n))
	}
	return &Transcript{path: path}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Path returns the transcript file path.
func (t *Transcript) Path() string { return t.path }

// Begin writes the header with the long story and the solution, followed
// by the short story.
func (t *Transcript) Begin(story game.Story) error {
	header := fmt.Sprintf("--- Historia Larga ---\n%s\n\n--- Solución ---\n%s\n\n--- Interacción ---\n", story.Long, story.Solution)
	if err := os.WriteFile(t.path, []byte(header), 0o644); err != nil {
		return errors.Wrap(err, "output: writing transcript header")
	}
	t.begun = true
	return t.Append("Historia: " + story.Short)
}

// Append writes one line. Lines written before Begin are dropped.
func (t *Transcript) Append(line string) error {
	if !t.begun {
		return nil
	}
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "output: opening transcript")
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.Wrap(err, "output: appending to transcript")
	}
	return nil
}

// Summary is the machine-readable record written next to the transcript.
type Summary struct {
	SessionID uuid.UUID    `json:"session_id"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Judge     string       `json:"judge"`
	Detective string       `json:"detective"`
	Result    *game.Result `json:"result"`
}

// SummaryPath is the JSON file paired with the transcript.
func (t *Transcript) SummaryPath() string {
	return strings.TrimSuffix(t.path, filepath.Ext(t.path)) + ".json"
}

// WriteSummary writes s as indented JSON to SummaryPath.
func (t *Transcript) WriteSummary(s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "output: encoding summary")
	}
	if err := os.WriteFile(t.SummaryPath(), data, 0o644); err != nil {
		return errors.Wrap(err, "output: writing summary")
	}
	return nil
}
