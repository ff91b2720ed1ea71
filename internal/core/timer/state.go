package timer

import "github.com/tempora/tempora/internal/core/model"

// Phase identifies which state of the timer state machine the store is in.
type Phase int

const (
	// PhaseIdle means no entry is running and nothing awaits a description.
	PhaseIdle Phase = iota
	// PhaseRunning means exactly one entry is running.
	PhaseRunning
	// PhasePending means a just-stopped entry awaits a finalized description.
	// The server already considers the entry closed; this is a client-only
	// convenience state.
	PhasePending
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePending:
		return "pending"
	default:
		return "unknown"
	}
}

// machineState is the tagged variant the store holds. The entry pointer is
// nil exactly when the phase is Idle, so Running-and-Pending-at-once is
// unrepresentable.
type machineState struct {
	phase Phase
	entry *model.TimeEntry
}

func idleState() machineState {
	return machineState{phase: PhaseIdle}
}

func runningState(entry *model.TimeEntry) machineState {
	return machineState{phase: PhaseRunning, entry: entry}
}

func pendingState(entry *model.TimeEntry) machineState {
	return machineState{phase: PhasePending, entry: entry}
}
