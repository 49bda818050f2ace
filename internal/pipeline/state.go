package pipeline

import (
	"go.uber.org/zap"
)

// State is a step of the per-request state machine.
type State string

const (
	StateAwaitingInput State = "awaiting_input"
	StateExtracting    State = "extracting"
	StateScoring       State = "scoring"
	StateNormalizing   State = "normalizing"
	StateComplete      State = "complete"
	StateFailed        State = "failed"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

type evaluation struct {
	state  State
	logger *zap.Logger
}

func (e *evaluation) advance(to State) {
	if e.state.Terminal() {
		return
	}
	e.logger.Debug("evaluation state", zap.String("from", string(e.state)), zap.String("to", string(to)))
	e.state = to
}

func (e *evaluation) fail(err error) {
	from := e.state
	e.advance(StateFailed)
	e.logger.Warn("evaluation failed", zap.String("state", string(from)), zap.Error(err))
}
