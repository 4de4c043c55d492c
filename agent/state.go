package agent

import (
	"sync"
)

// AgentState is an immutable snapshot of what the orchestrator is doing.
// Zero values mean unset; steps are 1-based.
type AgentState struct {
	IsRunning   bool
	CurrentTask string
	CurrentStep int
	TotalSteps  int
	Messages    []ChatMessage
	Errors      []ErrorInfo
}

// Transitions return a new snapshot and never share a backing array with the
// receiver, so published snapshots stay unchanged.

func (s AgentState) started(task string) AgentState {
	s.IsRunning = true
	s.CurrentTask = task
	s.CurrentStep = 0
	s.TotalSteps = 0
	return s
}

func (s AgentState) withTotal(n int) AgentState {
	s.TotalSteps = n
	return s
}

func (s AgentState) atStep(i int) AgentState {
	s.CurrentStep = i
	return s
}

func (s AgentState) withMessage(m ChatMessage) AgentState {
	msgs := make([]ChatMessage, len(s.Messages), len(s.Messages)+1)
	copy(msgs, s.Messages)
	s.Messages = append(msgs, m)
	return s
}

func (s AgentState) withError(e ErrorInfo) AgentState {
	errs := make([]ErrorInfo, len(s.Errors), len(s.Errors)+1)
	copy(errs, s.Errors)
	s.Errors = append(errs, e)
	return s
}

func (s AgentState) finished() AgentState {
	s.IsRunning = false
	s.CurrentTask = ""
	s.CurrentStep = 0
	s.TotalSteps = 0
	return s
}

func (s AgentState) cleared() AgentState {
	s.Messages = nil
	s.Errors = nil
	return s
}

// recentErrors returns up to n of the latest errors, oldest first.
func (s AgentState) recentErrors(n int) []ErrorInfo {
	if len(s.Errors) <= n {
		return append([]ErrorInfo(nil), s.Errors...)
	}
	return append([]ErrorInfo(nil), s.Errors[len(s.Errors)-n:]...)
}

type subscriber struct {
	id int
	fn func(AgentState)
}

// stateStore holds the current snapshot and pushes every new one to
// subscribers in registration order. Updates are serialized, so subscribers
// observe snapshots in the order they were produced.
type stateStore struct {
	publish sync.Mutex

	mu     sync.Mutex
	state  AgentState
	subs   []subscriber
	nextID int
}

func (st *stateStore) get() AgentState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

func (st *stateStore) update(fn func(AgentState) AgentState) AgentState {
	st.publish.Lock()
	defer st.publish.Unlock()

	st.mu.Lock()
	st.state = fn(st.state)
	next := st.state
	subs := append([]subscriber(nil), st.subs...)
	st.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next
}

func (st *stateStore) subscribe(fn func(AgentState)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.nextID++
	id := st.nextID
	st.subs = append(st.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			defer st.mu.Unlock()
			for i, s := range st.subs {
				if s.id == id {
					st.subs = append(st.subs[:i:i], st.subs[i+1:]...)
					return
				}
			}
		})
	}
}
