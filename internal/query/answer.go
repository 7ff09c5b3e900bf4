package query

// AnswerPhase enumerates the variants of the answer area. Exactly one phase
// is active at a time and only the submission pipeline moves it past Idle.
type AnswerPhase int

const (
	AnswerIdle AnswerPhase = iota
	AnswerLoading
	AnswerSuccess
	AnswerFailed
)

// IdlePlaceholder is what the answer panel shows before the first submission.
const IdlePlaceholder = "Your answer will appear here."

// AnswerState is the single source of truth for the answer area. The fields
// beyond Phase are populated per variant: Placeholder for Idle, Answer and
// Backend for Success, Message for Failed.
type AnswerState struct {
	Phase       AnswerPhase
	Placeholder string
	Answer      string
	Backend     string
	Message     string
}

func Idle() AnswerState {
	return AnswerState{Phase: AnswerIdle, Placeholder: IdlePlaceholder}
}

func Loading() AnswerState {
	return AnswerState{Phase: AnswerLoading}
}

func Success(answer, backend string) AnswerState {
	if backend == "" {
		backend = "unknown"
	}
	return AnswerState{Phase: AnswerSuccess, Answer: answer, Backend: backend}
}

func Failed(message string) AnswerState {
	return AnswerState{Phase: AnswerFailed, Message: message}
}
