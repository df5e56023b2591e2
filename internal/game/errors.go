package game

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrExtraction        = errors.New("no structured content found")
	ErrStoryIncomplete   = errors.New("story incomplete")
	ErrProtocolViolation = errors.New("protocol violation")
	ErrTurnLimitExceeded = errors.New("turn limit exceeded")
	ErrModel             = errors.New("model call failed")
	ErrCancelled         = errors.New("session abandoned")
)

// Failure explains why a session did not end Solved. Kind is one of the
// sentinels above; Raw is the offending model text, if any.
type Failure struct {
	Kind       error
	Raw        string
	Diagnostic string
	Cause      error
}

func (f *Failure) Error() string {
	return "game: " + f.Kind.Error() + ": " + f.Diagnostic
}

func (f *Failure) Unwrap() []error {
	if f.Cause == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Cause}
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	kind := ""
	if f.Kind != nil {
		kind = f.Kind.Error()
	}
	return json.Marshal(struct {
		Kind       string `json:"kind"`
		Raw        string `json:"raw,omitempty"`
		Diagnostic string `json:"diagnostic"`
	}{kind, f.Raw, f.Diagnostic})
}
