package game

// EventKind identifies what happened in a session.
type EventKind int

const (
	EventStoryCreated EventKind = iota
	EventTurnStarted
	EventQuestion
	EventVerdict
	EventSolutionAttempt
	EventSessionEnded
)

func (k EventKind) String() string {
	switch k {
	case EventStoryCreated:
		return "story-created"
	case EventTurnStarted:
		return "turn-started"
	case EventQuestion:
		return "question"
	case EventVerdict:
		return "verdict"
	case EventSolutionAttempt:
		return "solution-attempt"
	case EventSessionEnded:
		return "session-ended"
	default:
		return "unknown"
	}
}

// Event is emitted once per transition. It carries no formatting.
//
// Story is set for EventStoryCreated. Correct is set for
// EventSolutionAttempt. Status, Reason, RevealedSolution and FinalTurn are
// set for EventSessionEnded.
type Event struct {
	Kind    EventKind
	Turn    int
	Speaker string
	Model   string
	Text    string
	Correct bool

	Story *Story

	Status           Status
	Reason           string
	RevealedSolution string
	FinalTurn        bool
}
